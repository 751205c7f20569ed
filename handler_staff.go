package main

import (
	"net/http"

	"github.com/SAS-Sasao/sales-manage/internal/validation"
)

const staffCols = `id, staff_code, staff_name, COALESCE(email,''), COALESCE(department,''),
	COALESCE(position,''), COALESCE(phone_number,''), is_active,
	created_by, created_at, COALESCE(updated_by,''), COALESCE(updated_at,'')`

func scanStaff(s scanner) (Staff, error) {
	var st Staff
	var isActive int
	err := s.Scan(&st.ID, &st.StaffCode, &st.StaffName, &st.Email, &st.Department,
		&st.Position, &st.PhoneNumber, &isActive,
		&st.CreatedBy, &st.CreatedAt, &st.UpdatedBy, &st.UpdatedAt)
	st.IsActive = isActive != 0
	return st, err
}

func validateStaff(st *Staff) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "staff_code", st.StaffCode)
	validation.RequireField(ve, "staff_name", st.StaffName)
	validation.ValidateEmail(ve, "email", st.Email)
	return ve
}

func handleListStaff(w http.ResponseWriter, r *http.Request) {
	rows, err := db.Query("SELECT " + staffCols + " FROM staff ORDER BY staff_code")
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	var items []Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			continue
		}
		items = append(items, st)
	}
	if items == nil {
		items = []Staff{}
	}
	jsonResp(w, items)
}

func handleGetStaff(w http.ResponseWriter, r *http.Request, id string) {
	st, err := scanStaff(db.QueryRow("SELECT "+staffCols+" FROM staff WHERE id = ?", id))
	if err != nil {
		jsonErr(w, "担当者が見つかりません", 404)
		return
	}
	jsonResp(w, st)
}

func handleGetStaffByCode(w http.ResponseWriter, r *http.Request, code string) {
	st, err := scanStaff(db.QueryRow("SELECT "+staffCols+" FROM staff WHERE staff_code = ?", code))
	if err != nil {
		jsonErr(w, "担当者が見つかりません", 404)
		return
	}
	jsonResp(w, st)
}

func handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var st Staff
	if err := decodeBody(r, &st); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := validateStaff(&st); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff WHERE staff_code = ?", st.StaffCode).Scan(&count); err != nil {
		jsonErr(w, "担当者の作成に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在する担当者コードです", 400)
		return
	}

	isActive := 0
	if st.IsActive {
		isActive = 1
	}
	res, err := db.Exec(`INSERT INTO staff (
		staff_code, staff_name, email, department, position, phone_number, is_active,
		created_by, updated_by, updated_at
	) VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		st.StaffCode, st.StaffName, st.Email, st.Department, st.Position, st.PhoneNumber, isActive,
		st.CreatedBy, st.UpdatedBy)
	if err != nil {
		jsonErr(w, "担当者の作成に失敗しました", 500)
		return
	}
	id, _ := res.LastInsertId()

	created, err := scanStaff(db.QueryRow("SELECT "+staffCols+" FROM staff WHERE id = ?", id))
	if err != nil {
		jsonErr(w, "担当者の作成に失敗しました", 500)
		return
	}
	broadcast("staff", "create", created.ID)
	w.WriteHeader(201)
	jsonResp(w, created)
}

func handleUpdateStaff(w http.ResponseWriter, r *http.Request, id string) {
	var st Staff
	if err := decodeBody(r, &st); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if ve := validateStaff(&st); ve.HasErrors() {
		jsonErr(w, ve.Error(), 400)
		return
	}

	var existing int
	if err := db.QueryRow("SELECT id FROM staff WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "担当者が見つかりません", 404)
		return
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff WHERE staff_code = ? AND id != ?", st.StaffCode, id).Scan(&count); err != nil {
		jsonErr(w, "担当者の更新に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "既に存在する担当者コードです", 400)
		return
	}

	isActive := 0
	if st.IsActive {
		isActive = 1
	}
	if _, err := db.Exec(`UPDATE staff SET
		staff_code = ?, staff_name = ?, email = ?, department = ?, position = ?,
		phone_number = ?, is_active = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		st.StaffCode, st.StaffName, st.Email, st.Department, st.Position,
		st.PhoneNumber, isActive, st.UpdatedBy, id); err != nil {
		jsonErr(w, "担当者の更新に失敗しました", 500)
		return
	}
	broadcast("staff", "update", id)
	handleGetStaff(w, r, id)
}

func handleDeleteStaff(w http.ResponseWriter, r *http.Request, id string) {
	var existing int
	if err := db.QueryRow("SELECT id FROM staff WHERE id = ?", id).Scan(&existing); err != nil {
		jsonErr(w, "担当者が見つかりません", 404)
		return
	}
	if _, err := db.Exec("DELETE FROM staff WHERE id = ?", id); err != nil {
		jsonErr(w, "担当者の削除に失敗しました", 500)
		return
	}
	broadcast("staff", "delete", existing)
	jsonResp(w, map[string]int{"deleted": existing})
}
