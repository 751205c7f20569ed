package main

import (
	"net/http/httptest"
	"testing"
)

func TestRouteAPIDispatch(t *testing.T) {
	setupTestDB(t)
	seedDB()

	w := httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/tax-rates", nil))
	assertStatus(t, w, 200)
	var taxRates []TaxRate
	decodeData(t, w, &taxRates)
	if len(taxRates) != 5 {
		t.Errorf("Expected 5 seeded tax rates, got %d", len(taxRates))
	}

	w = httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/tax-rates/01", nil))
	assertStatus(t, w, 200)

	w = httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/staff/code/00001", nil))
	assertStatus(t, w, 200)

	w = httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/customers/code/0000000000000001", nil))
	assertStatus(t, w, 200)

	w = httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/dropdown/ids", nil))
	assertStatus(t, w, 200)
}

func TestRouteAPIUnknownPath(t *testing.T) {
	setupTestDB(t)

	w := httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("GET", "/api/orders", nil))
	assertStatus(t, w, 404)
}

func TestRouteAPIMethodMismatch(t *testing.T) {
	setupTestDB(t)

	// DELETE on a collection has no route
	w := httptest.NewRecorder()
	routeAPI(w, httptest.NewRequest("DELETE", "/api/tax-rates", nil))
	assertStatus(t, w, 404)
}
