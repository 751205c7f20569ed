package main

import (
	"net/http"

	"github.com/SAS-Sasao/sales-manage/internal/validation"
)

type LocationRequest struct {
	LocationName string `json:"locationName"`
	UserID       string `json:"userId"`
}

func (req *LocationRequest) validate() *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "locationName", req.LocationName)
	validation.RequireField(ve, "userId", req.UserID)
	validation.ValidateMaxLength(ve, "locationName", req.LocationName, 100)
	return ve
}

const locationCols = "id, location_code, location_name, created_by, updated_by, created_at, updated_at"

func scanLocation(q rowQuerier, query string, args ...interface{}) (Location, error) {
	var l Location
	err := q.QueryRow(query, args...).
		Scan(&l.ID, &l.LocationCode, &l.LocationName, &l.CreatedBy, &l.UpdatedBy, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func handleListLocations(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT " + locationCols + " FROM locations ORDER BY CAST(location_code AS INTEGER)")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var items []Location
	for rows.Next() {
		var l Location
		rows.Scan(&l.ID, &l.LocationCode, &l.LocationName, &l.CreatedBy, &l.UpdatedBy, &l.CreatedAt, &l.UpdatedAt)
		items = append(items, l)
	}
	if items == nil {
		items = []Location{}
	}
	jsonResp(w, items)
}

func handleGetLocation(w http.ResponseWriter, r *http.Request, code string) {
	l, err := scanLocation(db, "SELECT "+locationCols+" FROM locations WHERE location_code = ?", code)
	if err != nil {
		jsonErr(w, "指定された拠点コードは存在しません", 404)
		return
	}
	jsonResp(w, l)
}

func handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
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
		jsonErr(w, "拠点の作成に失敗しました", 500)
		return
	}
	defer tx.Rollback()

	code, err := nextCode(tx, "locations", "location_code", locCodeWidth)
	if err != nil {
		jsonErr(w, "拠点の作成に失敗しました", 500)
		return
	}
	if _, err := tx.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES (?, ?, ?, ?)",
		code, req.LocationName, req.UserID, req.UserID); err != nil {
		jsonErr(w, "拠点の作成に失敗しました", 500)
		return
	}
	if err := tx.Commit(); err != nil {
		jsonErr(w, "拠点の作成に失敗しました", 500)
		return
	}

	l, err := scanLocation(db, "SELECT "+locationCols+" FROM locations WHERE location_code = ?", code)
	if err != nil {
		jsonErr(w, "拠点の作成に失敗しました", 500)
		return
	}
	broadcast("location", "create", l.LocationCode)
	w.WriteHeader(201)
	jsonResp(w, l)
}

func handleUpdateLocation(w http.ResponseWriter, r *http.Request, code string) {
	var req LocationRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := req.validate(); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var id int
	if err := db.QueryRow("SELECT id FROM locations WHERE location_code = ?", code).Scan(&id); err != nil {
		jsonErr(w, "指定された拠点コードは存在しません", 404)
		return
	}
	if _, err := db.Exec("UPDATE locations SET location_name = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP WHERE location_code = ?",
		req.LocationName, req.UserID, code); err != nil {
		jsonErr(w, "拠点の更新に失敗しました", 500)
		return
	}
	broadcast("location", "update", code)
	handleGetLocation(w, r, code)
}

func handleDeleteLocation(w http.ResponseWriter, r *http.Request, code string) {
	var id int
	if err := db.QueryRow("SELECT id FROM locations WHERE location_code = ?", code).Scan(&id); err != nil {
		jsonErr(w, "指定された拠点コードは存在しません", 404)
		return
	}
	if _, err := db.Exec("DELETE FROM locations WHERE location_code = ?", code); err != nil {
		jsonErr(w, "拠点の削除に失敗しました", 500)
		return
	}
	broadcast("location", "delete", code)
	jsonResp(w, map[string]string{"deleted": code})
}
