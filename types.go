package main

import "github.com/SAS-Sasao/sales-manage/internal/models"

// Type aliases so handler code can use the unqualified names while the
// definitions live in internal/models.

const (
	TaxCalcFloor = models.TaxCalcFloor
	TaxCalcCeil  = models.TaxCalcCeil
	TaxCalcRound = models.TaxCalcRound
)

type APIResponse = models.APIResponse
type Meta = models.Meta
type User = models.User
type TaxRate = models.TaxRate
type Location = models.Location
type DropdownItem = models.DropdownItem
type Customer = models.Customer
type Staff = models.Staff
