package main

import (
	"net/http"

	"github.com/SAS-Sasao/sales-manage/internal/validation"
)

type TaxRateRequest struct {
	TaxName         string  `json:"taxName"`
	Rate            float64 `json:"rate"`
	CalculationType int     `json:"calculationType"`
	UserID          string  `json:"userId"`
}

func (req *TaxRateRequest) validate() *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "taxName", req.TaxName)
	validation.RequireField(ve, "userId", req.UserID)
	validation.ValidateNonNegativeFloat(ve, "rate", req.Rate)
	validation.ValidateIntRange(ve, "calculationType", req.CalculationType, TaxCalcFloor, TaxCalcRound)
	return ve
}

const taxRateCols = "id, tax_code, tax_name, rate, calculation_type, created_by, updated_by, created_at, updated_at"

func scanTaxRate(q rowQuerier, query string, args ...interface{}) (TaxRate, error) {
	var t TaxRate
	err := q.QueryRow(query, args...).
		Scan(&t.ID, &t.TaxCode, &t.TaxName, &t.Rate, &t.CalculationType, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func handleListTaxRates(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT " + taxRateCols + " FROM tax_rates ORDER BY CAST(tax_code AS INTEGER)")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var items []TaxRate
	for rows.Next() {
		var t TaxRate
		rows.Scan(&t.ID, &t.TaxCode, &t.TaxName, &t.Rate, &t.CalculationType, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
		items = append(items, t)
	}
	if items == nil {
		items = []TaxRate{}
	}
	jsonResp(w, items)
}

func handleGetTaxRate(w http.ResponseWriter, r *http.Request, code string) {
	t, err := scanTaxRate(db, "SELECT "+taxRateCols+" FROM tax_rates WHERE tax_code = ?", code)
	if err != nil {
		jsonErr(w, "指定された税率コードは存在しません", 404)
		return
	}
	jsonResp(w, t)
}

func handleCreateTaxRate(w http.ResponseWriter, r *http.Request) {
	var req TaxRateRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := req.validate(); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	tx, err := db.Begin()
	if err != nil {
		jsonErr(w, "税率の作成に失敗しました", 500)
		return
	}
	defer tx.Rollback()

	code, err := nextCode(tx, "tax_rates", "tax_code", taxCodeWidth)
	if err != nil {
		jsonErr(w, "税率の作成に失敗しました", 500)
		return
	}
	if _, err := tx.Exec("INSERT INTO tax_rates (tax_code, tax_name, rate, calculation_type, created_by, updated_by) VALUES (?, ?, ?, ?, ?, ?)",
		code, req.TaxName, req.Rate, req.CalculationType, req.UserID, req.UserID); err != nil {
		jsonErr(w, "税率の作成に失敗しました", 500)
		return
	}
	if err := tx.Commit(); err != nil {
		jsonErr(w, "税率の作成に失敗しました", 500)
		return
	}

	t, err := scanTaxRate(db, "SELECT "+taxRateCols+" FROM tax_rates WHERE tax_code = ?", code)
	if err != nil {
		jsonErr(w, "税率の作成に失敗しました", 500)
		return
	}
	broadcast("tax_rate", "create", t.TaxCode)
	w.WriteHeader(201)
	jsonResp(w, t)
}

func handleUpdateTaxRate(w http.ResponseWriter, r *http.Request, code string) {
	var req TaxRateRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := req.validate(); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var id int
	if err := db.QueryRow("SELECT id FROM tax_rates WHERE tax_code = ?", code).Scan(&id); err != nil {
		jsonErr(w, "指定された税率コードは存在しません", 404)
		return
	}
	if _, err := db.Exec("UPDATE tax_rates SET tax_name = ?, rate = ?, calculation_type = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP WHERE tax_code = ?",
		req.TaxName, req.Rate, req.CalculationType, req.UserID, code); err != nil {
		jsonErr(w, "税率の更新に失敗しました", 500)
		return
	}
	broadcast("tax_rate", "update", code)
	handleGetTaxRate(w, r, code)
}

func handleDeleteTaxRate(w http.ResponseWriter, r *http.Request, code string) {
	var id int
	if err := db.QueryRow("SELECT id FROM tax_rates WHERE tax_code = ?", code).Scan(&id); err != nil {
		jsonErr(w, "指定された税率コードは存在しません", 404)
		return
	}
	if _, err := db.Exec("DELETE FROM tax_rates WHERE tax_code = ?", code); err != nil {
		jsonErr(w, "税率の削除に失敗しました", 500)
		return
	}
	broadcast("tax_rate", "delete", code)
	jsonResp(w, map[string]string{"deleted": code})
}
