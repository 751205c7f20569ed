package main

import (
	"database/sql"
	"net/http"

	"github.com/SAS-Sasao/sales-manage/internal/validation"
)

const customerCols = `id, customer_code, customer_name, COALESCE(department_name,''), honorific,
	COALESCE(postal_code,''), COALESCE(address1,''), COALESCE(address2,''), COALESCE(phone_number,''),
	COALESCE(fax_number,''), COALESCE(email,''), COALESCE(invoice_number,''), invoice_issuance,
	COALESCE(invoice_method,''), COALESCE(closing_day,''), COALESCE(payment_day,''), COALESCE(payment_site_day,''),
	tax_processing, tax_rounding, staff_id, COALESCE(wo_special_code,''),
	created_by, created_at, COALESCE(updated_by,''), COALESCE(updated_at,'')`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(s scanner) (Customer, error) {
	var c Customer
	var staffID sql.NullInt64
	err := s.Scan(&c.ID, &c.CustomerCode, &c.CustomerName, &c.DepartmentName, &c.Honorific,
		&c.PostalCode, &c.Address1, &c.Address2, &c.PhoneNumber,
		&c.FaxNumber, &c.Email, &c.InvoiceNumber, &c.InvoiceIssuance,
		&c.InvoiceMethod, &c.ClosingDay, &c.PaymentDay, &c.PaymentSiteDay,
		&c.TaxProcessing, &c.TaxRounding, &staffID, &c.WoSpecialCode,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt)
	if staffID.Valid {
		v := int(staffID.Int64)
		c.StaffID = &v
	}
	return c, err
}

func validateCustomer(c *Customer) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "customer_code", c.CustomerCode)
	validation.RequireField(ve, "customer_name", c.CustomerName)
	validation.RequireField(ve, "honorific", c.Honorific)
	validation.RequireField(ve, "invoice_issuance", c.InvoiceIssuance)
	validation.RequireField(ve, "tax_processing", c.TaxProcessing)
	validation.RequireField(ve, "tax_rounding", c.TaxRounding)
	validation.ValidateEmail(ve, "email", c.Email)
	return ve
}

func handleListCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT " + customerCols + " FROM customers ORDER BY customer_code")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var items []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			continue
		}
		items = append(items, c)
	}
	if items == nil {
		items = []Customer{}
	}
	jsonResp(w, items)
}

func handleGetCustomer(w http.ResponseWriter, r *http.Request, id string) {
	c, err := scanCustomer(db.QueryRow("SELECT "+customerCols+" FROM customers WHERE id = ?", id))
	if err != nil {
		jsonErr(w, "得意先が見つかりません", 404)
		return
	}
	jsonResp(w, c)
}

func handleGetCustomerByCode(w http.ResponseWriter, r *http.Request, code string) {
	c, err := scanCustomer(db.QueryRow("SELECT "+customerCols+" FROM customers WHERE customer_code = ?", code))
	if err != nil {
		jsonErr(w, "得意先が見つかりません", 404)
		return
	}
	jsonResp(w, c)
}

func handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c Customer
	if err := decodeBody(r, &c); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := validateCustomer(&c); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers WHERE customer_code = ?", c.CustomerCode).Scan(&count); err != nil {
		jsonErr(w, "得意先の作成に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在する得意先コードです", 400)
		return
	}

	res, err := db.Exec(`INSERT INTO customers (
		customer_code, customer_name, department_name, honorific, postal_code,
		address1, address2, phone_number, fax_number, email,
		invoice_number, invoice_issuance, invoice_method, closing_day, payment_day,
		payment_site_day, tax_processing, tax_rounding, staff_id, wo_special_code,
		created_by, updated_by, updated_at
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		c.CustomerCode, c.CustomerName, c.DepartmentName, c.Honorific, c.PostalCode,
		c.Address1, c.Address2, c.PhoneNumber, c.FaxNumber, c.Email,
		c.InvoiceNumber, c.InvoiceIssuance, c.InvoiceMethod, c.ClosingDay, c.PaymentDay,
		c.PaymentSiteDay, c.TaxProcessing, c.TaxRounding, c.StaffID, c.WoSpecialCode,
		c.CreatedBy, c.UpdatedBy)
	if err != nil {
		jsonErr(w, "得意先の作成に失敗しました", 500)
		return
	}
	id, _ := res.LastInsertId()

	created, err := scanCustomer(db.QueryRow("SELECT "+customerCols+" FROM customers WHERE id = ?", id))
	if err != nil {
		jsonErr(w, "得意先の作成に失敗しました", 500)
		return
	}
	broadcast("customer", "create", created.ID)
	w.WriteHeader(201)
	jsonResp(w, created)
}

func handleUpdateCustomer(w http.ResponseWriter, r *http.Request, id string) {
	var c Customer
	if err := decodeBody(r, &c); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := validateCustomer(&c); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var existing int
	if err := db.QueryRow("SELECT id FROM customers WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "得意先が見つかりません", 404)
		return
	}

	// Code uniqueness check excluding the row being updated
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers WHERE customer_code = ? AND id != ?", c.CustomerCode, id).Scan(&count); err != nil {
		jsonErr(w, "得意先の更新に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在する得意先コードです", 400)
		return
	}

	if _, err := db.Exec(`UPDATE customers SET
		customer_code = ?, customer_name = ?, department_name = ?, honorific = ?, postal_code = ?,
		address1 = ?, address2 = ?, phone_number = ?, fax_number = ?, email = ?,
		invoice_number = ?, invoice_issuance = ?, invoice_method = ?, closing_day = ?, payment_day = ?,
		payment_site_day = ?, tax_processing = ?, tax_rounding = ?, staff_id = ?, wo_special_code = ?,
		updated_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		c.CustomerCode, c.CustomerName, c.DepartmentName, c.Honorific, c.PostalCode,
		c.Address1, c.Address2, c.PhoneNumber, c.FaxNumber, c.Email,
		c.InvoiceNumber, c.InvoiceIssuance, c.InvoiceMethod, c.ClosingDay, c.PaymentDay,
		c.PaymentSiteDay, c.TaxProcessing, c.TaxRounding, c.StaffID, c.WoSpecialCode,
		c.UpdatedBy, id); err != nil {
		jsonErr(w, "得意先の更新に失敗しました", 500)
		return
	}
	broadcast("customer", "update", id)
	handleGetCustomer(w, r, id)
}

func handleDeleteCustomer(w http.ResponseWriter, r *http.Request, id string) {
	var existing int
	if err := db.QueryRow("SELECT id FROM customers WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "得意先が見つかりません", 404)
		return
	}
	if _, err := db.Exec("DELETE FROM customers WHERE id = ?", id); err != nil {
		jsonErr(w, "得意先の削除に失敗しました", 500)
		return
	}
	broadcast("customer", "delete", existing)
	jsonResp(w, map[string]int{"deleted": existing})
}
