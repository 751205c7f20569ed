package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// handleExport downloads a master table as CSV (default) or XLSX.
func handleExport(w http.ResponseWriter, r *http.Request, entity string) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch entity {
	case "customers":
		exportCustomers(w, format)
	case "staff":
		exportStaff(w, format)
	case "tax-rates":
		exportTaxRates(w, format)
	case "locations":
		exportLocations(w, format)
	default:
		jsonErr(w, "not found", 404)
	}
}

func exportCustomers(w http.ResponseWriter, format string) {
	rows, err := db.Query("SELECT " + customerCols + " FROM customers ORDER BY customer_code")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	headers := []string{"ID", "Customer Code", "Customer Name", "Department", "Honorific", "Postal Code",
		"Address 1", "Address 2", "Phone", "Fax", "Email", "Invoice Number", "Invoice Issuance",
		"Invoice Method", "Closing Day", "Payment Day", "Payment Site Day", "Tax Processing",
		"Tax Rounding", "Staff ID", "WO Special Code", "Created By", "Created At", "Updated By", "Updated At"}
	var data [][]string
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			continue
		}
		staffID := ""
		if c.StaffID != nil {
			staffID = strconv.Itoa(*c.StaffID)
		}
		data = append(data, []string{
			strconv.Itoa(c.ID), c.CustomerCode, c.CustomerName, c.DepartmentName, c.Honorific, c.PostalCode,
			c.Address1, c.Address2, c.PhoneNumber, c.FaxNumber, c.Email, c.InvoiceNumber, c.InvoiceIssuance,
			c.InvoiceMethod, c.ClosingDay, c.PaymentDay, c.PaymentSiteDay, c.TaxProcessing,
			c.TaxRounding, staffID, c.WoSpecialCode, c.CreatedBy, c.CreatedAt, c.UpdatedBy, c.UpdatedAt,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Customers", headers, data)
	} else {
		exportCSV(w, "customers.csv", headers, data)
	}
}

func exportStaff(w http.ResponseWriter, format string) {
	rows, err := db.Query("SELECT " + staffCols + " FROM staff ORDER BY staff_code")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	headers := []string{"ID", "Staff Code", "Staff Name", "Email", "Department", "Position",
		"Phone", "Active", "Created By", "Created At", "Updated By", "Updated At"}
	var data [][]string
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			continue
		}
		active := "0"
		if st.IsActive {
			active = "1"
		}
		data = append(data, []string{
			strconv.Itoa(st.ID), st.StaffCode, st.StaffName, st.Email, st.Department, st.Position,
			st.PhoneNumber, active, st.CreatedBy, st.CreatedAt, st.UpdatedBy, st.UpdatedAt,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Staff", headers, data)
	} else {
		exportCSV(w, "staff.csv", headers, data)
	}
}

func exportTaxRates(w http.ResponseWriter, format string) {
	rows, err := db.Query("SELECT " + taxRateCols + " FROM tax_rates ORDER BY CAST(tax_code AS INTEGER)")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	headers := []string{"ID", "Tax Code", "Tax Name", "Rate", "Calculation Type",
		"Created By", "Updated By", "Created At", "Updated At"}
	var data [][]string
	for rows.Next() {
		var t TaxRate
		if err := rows.Scan(&t.ID, &t.TaxCode, &t.TaxName, &t.Rate, &t.CalculationType,
			&t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			continue
		}
		data = append(data, []string{
			strconv.Itoa(t.ID), t.TaxCode, t.TaxName, fmt.Sprintf("%g", t.Rate), strconv.Itoa(t.CalculationType),
			t.CreatedBy, t.UpdatedBy, t.CreatedAt, t.UpdatedAt,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "TaxRates", headers, data)
	} else {
		exportCSV(w, "tax_rates.csv", headers, data)
	}
}

func exportLocations(w http.ResponseWriter, format string) {
	rows, err := db.Query("SELECT " + locationCols + " FROM locations ORDER BY CAST(location_code AS INTEGER)")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	headers := []string{"ID", "Location Code", "Location Name", "Created By", "Updated By", "Created At", "Updated At"}
	var data [][]string
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.LocationCode, &l.LocationName, &l.CreatedBy, &l.UpdatedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
			continue
		}
		data = append(data, []string{
			strconv.Itoa(l.ID), l.LocationCode, l.LocationName, l.CreatedBy, l.UpdatedBy, l.CreatedAt, l.UpdatedAt,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Locations", headers, data)
	} else {
		exportCSV(w, "locations.csv", headers, data)
	}
}

// exportCSV writes data to CSV format.
func exportCSV(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		http.Error(w, "Failed to write CSV headers", 500)
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			http.Error(w, "Failed to write CSV row", 500)
			return
		}
	}
}

// exportExcel writes data to Excel format.
func exportExcel(w http.ResponseWriter, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to create Excel sheet", 500)
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		http.Error(w, "Failed to create header style", 500)
		return
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", strings.ToLower(sheetName)))

	if err := f.Write(w); err != nil {
		http.Error(w, "Failed to write Excel file", 500)
		return
	}
}
