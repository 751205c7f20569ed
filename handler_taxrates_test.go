package main

import (
	"net/http/httptest"
	"testing"
)

func createTaxRateT(t *testing.T, name string, rate float64, calcType int) TaxRate {
	t.Helper()
	w := httptest.NewRecorder()
	handleCreateTaxRate(w, jsonRequest("POST", "/api/tax-rates", TaxRateRequest{
		TaxName: name, Rate: rate, CalculationType: calcType, UserID: "00001",
	}))
	assertStatus(t, w, 201)
	var tr TaxRate
	decodeData(t, w, &tr)
	return tr
}

func TestCreateTaxRateGeneratesCode(t *testing.T) {
	setupTestDB(t)

	tr1 := createTaxRateT(t, "10%", 10, TaxCalcRound)
	if tr1.TaxCode != "01" {
		t.Errorf("Expected tax_code 01, got %s", tr1.TaxCode)
	}
	tr2 := createTaxRateT(t, "8%(軽減税率)", 8, TaxCalcRound)
	if tr2.TaxCode != "02" {
		t.Errorf("Expected tax_code 02, got %s", tr2.TaxCode)
	}
}

func TestTaxRateRoundTrip(t *testing.T) {
	setupTestDB(t)
	created := createTaxRateT(t, "非課税", 0, TaxCalcFloor)

	w := httptest.NewRecorder()
	handleGetTaxRate(w, httptest.NewRequest("GET", "/api/tax-rates/"+created.TaxCode, nil), created.TaxCode)
	assertStatus(t, w, 200)

	var got TaxRate
	decodeData(t, w, &got)
	if got != created {
		t.Errorf("GET after create mismatch: %+v vs %+v", got, created)
	}
}

func TestCreateTaxRateValidation(t *testing.T) {
	setupTestDB(t)

	cases := []TaxRateRequest{
		{Rate: 10, CalculationType: TaxCalcRound, UserID: "00001"},         // missing name
		{TaxName: "10%", Rate: 10, CalculationType: TaxCalcRound},          // missing user
		{TaxName: "10%", Rate: -1, CalculationType: TaxCalcRound, UserID: "00001"}, // negative rate
		{TaxName: "10%", Rate: 10, CalculationType: 5, UserID: "00001"},    // bad calc type
	}
	for i, req := range cases {
		w := httptest.NewRecorder()
		handleCreateTaxRate(w, jsonRequest("POST", "/api/tax-rates", req))
		assertStatus(t, w, 400)
		if countRows(t, "tax_rates") != 0 {
			t.Errorf("case %d: rejected create must not insert a row", i)
		}
	}
}

func TestUpdateTaxRate(t *testing.T) {
	setupTestDB(t)
	created := createTaxRateT(t, "10%", 10, TaxCalcRound)

	w := httptest.NewRecorder()
	handleUpdateTaxRate(w, jsonRequest("PUT", "/api/tax-rates/"+created.TaxCode, TaxRateRequest{
		TaxName: "10%(改定)", Rate: 10, CalculationType: TaxCalcCeil, UserID: "00002",
	}), created.TaxCode)
	assertStatus(t, w, 200)

	var updated TaxRate
	decodeData(t, w, &updated)
	if updated.TaxName != "10%(改定)" || updated.CalculationType != TaxCalcCeil {
		t.Errorf("Update not applied: %+v", updated)
	}
	if updated.UpdatedBy != "00002" || updated.CreatedBy != "00001" {
		t.Errorf("Audit columns wrong: created_by=%s updated_by=%s", updated.CreatedBy, updated.UpdatedBy)
	}
	if updated.TaxCode != created.TaxCode {
		t.Errorf("Update must not change the code: %s vs %s", updated.TaxCode, created.TaxCode)
	}
}

func TestUpdateTaxRateNotFound(t *testing.T) {
	setupTestDB(t)

	w := httptest.NewRecorder()
	handleUpdateTaxRate(w, jsonRequest("PUT", "/api/tax-rates/99", TaxRateRequest{
		TaxName: "10%", Rate: 10, CalculationType: TaxCalcRound, UserID: "00001",
	}), "99")
	assertStatus(t, w, 404)
}

func TestDeleteTaxRate(t *testing.T) {
	setupTestDB(t)
	created := createTaxRateT(t, "対象外", 0, TaxCalcRound)

	w := httptest.NewRecorder()
	handleDeleteTaxRate(w, httptest.NewRequest("DELETE", "/api/tax-rates/"+created.TaxCode, nil), created.TaxCode)
	assertStatus(t, w, 200)

	if countRows(t, "tax_rates") != 0 {
		t.Error("Row should be gone after delete")
	}
}

func TestDeleteTaxRateMissing(t *testing.T) {
	setupTestDB(t)
	createTaxRateT(t, "10%", 10, TaxCalcRound)
	before := countRows(t, "tax_rates")

	w := httptest.NewRecorder()
	handleDeleteTaxRate(w, httptest.NewRequest("DELETE", "/api/tax-rates/99", nil), "99")
	assertStatus(t, w, 404)

	if countRows(t, "tax_rates") != before {
		t.Error("Delete of a missing code must not mutate anything")
	}
}
