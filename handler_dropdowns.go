package main

import (
	"net/http"
	"strconv"
)

type DropdownItemRequest struct {
	DropdownID    string `json:"dropdownId"`
	DropdownValue string `json:"dropdownValue"`
	UserID        string `json:"userId"`
}

const dropdownCols = "id, dropdown_id, dropdown_value, created_by, COALESCE(updated_by,''), created_at, COALESCE(updated_at,'')"

func scanDropdownItem(q rowQuerier, query string, args ...interface{}) (DropdownItem, error) {
	var d DropdownItem
	err := q.QueryRow(query, args...).
		Scan(&d.ID, &d.DropdownID, &d.DropdownValue, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func handleListDropdownIds(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT DISTINCT dropdown_id FROM dropdown_items ORDER BY dropdown_id")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		rows.Scan(&id)
		ids = append(ids, id)
	}
	if ids == nil {
		ids = []string{}
	}
	jsonResp(w, ids)
}

func queryDropdownItems(w http.ResponseWriter, query string, args ...interface{}) {
	rows, err := db.Query(query, args...)
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var items []DropdownItem
	for rows.Next() {
		var d DropdownItem
		rows.Scan(&d.ID, &d.DropdownID, &d.DropdownValue, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt)
		items = append(items, d)
	}
	if items == nil {
		items = []DropdownItem{}
	}
	jsonResp(w, items)
}

func handleListDropdownItems(w http.ResponseWriter, r *http.Request) {
	queryDropdownItems(w, "SELECT "+dropdownCols+" FROM dropdown_items ORDER BY dropdown_id, id")
}

func handleListDropdownItemsByGroup(w http.ResponseWriter, r *http.Request, dropdownID string) {
	queryDropdownItems(w, "SELECT "+dropdownCols+" FROM dropdown_items WHERE dropdown_id = ? ORDER BY id", dropdownID)
}

func handleCreateDropdownItem(w http.ResponseWriter, r *http.Request) {
	var req DropdownItemRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if req.DropdownID == "" || req.DropdownValue == "" || req.UserID == "" {
		jsonErr(w, "プルダウンID、項目値、ユーザーIDは必須です", 400)
		return
	}

	// Values are unique per group, not globally
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM dropdown_items WHERE dropdown_id = ? AND dropdown_value = ?",
		req.DropdownID, req.DropdownValue).Scan(&count); err != nil {
		jsonErr(w, "プルダウン項目の作成に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在するプルダウン項目です", 400)
		return
	}

	res, err := db.Exec("INSERT INTO dropdown_items (dropdown_id, dropdown_value, created_by, updated_by, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
		req.DropdownID, req.DropdownValue, req.UserID, req.UserID)
	if err != nil {
		jsonErr(w, "プルダウン項目の作成に失敗しました", 500)
		return
	}
	id, _ := res.LastInsertId()

	d, err := scanDropdownItem(db, "SELECT "+dropdownCols+" FROM dropdown_items WHERE id = ?", id)
	if err != nil {
		jsonErr(w, "プルダウン項目の作成に失敗しました", 500)
		return
	}
	broadcast("dropdown_item", "create", d.ID)
	w.WriteHeader(201)
	jsonResp(w, d)
}

func handleUpdateDropdownItem(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		jsonErr(w, "invalid id", 400)
		return
	}
	var req DropdownItemRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if req.DropdownID == "" || req.DropdownValue == "" || req.UserID == "" {
		jsonErr(w, "プルダウンID、項目値、ユーザーIDは必須です", 400)
		return
	}

	var existing int
	if err := db.QueryRow("SELECT id FROM dropdown_items WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "プルダウン項目が見つかりません", 404)
		return
	}

	// Duplicate (group, value) check excluding the row being updated
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM dropdown_items WHERE dropdown_id = ? AND dropdown_value = ? AND id != ?",
		req.DropdownID, req.DropdownValue, id).Scan(&count); err != nil {
		jsonErr(w, "プルダウン項目の更新に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在するプルダウン項目です", 400)
		return
	}

	if _, err := db.Exec("UPDATE dropdown_items SET dropdown_id = ?, dropdown_value = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		req.DropdownID, req.DropdownValue, req.UserID, id); err != nil {
		jsonErr(w, "プルダウン項目の更新に失敗しました", 500)
		return
	}

	d, err := scanDropdownItem(db, "SELECT "+dropdownCols+" FROM dropdown_items WHERE id = ?", id)
	if err != nil {
		jsonErr(w, "プルダウン項目の更新に失敗しました", 500)
		return
	}
	broadcast("dropdown_item", "update", d.ID)
	jsonResp(w, d)
}

func handleDeleteDropdownItem(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		jsonErr(w, "invalid id", 400)
		return
	}
	var existing int
	if err := db.QueryRow("SELECT id FROM dropdown_items WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "プルダウン項目が見つかりません", 404)
		return
	}
	if _, err := db.Exec("DELETE FROM dropdown_items WHERE id = ?", id); err != nil {
		jsonErr(w, "プルダウン項目の削除に失敗しました", 500)
		return
	}
	broadcast("dropdown_item", "delete", id)
	jsonResp(w, map[string]int{"deleted": id})
}

func handleDeleteDropdownGroup(w http.ResponseWriter, r *http.Request, dropdownID string) {
	res, err := db.Exec("DELETE FROM dropdown_items WHERE dropdown_id = ?", dropdownID)
	if err != nil {
		jsonErr(w, "プルダウン項目の削除に失敗しました", 500)
		return
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		jsonErr(w, "プルダウン項目が見つかりません", 404)
		return
	}
	broadcast("dropdown_group", "delete", dropdownID)
	jsonResp(w, map[string]interface{}{"deleted": dropdownID, "count": count})
}
