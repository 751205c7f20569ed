package main

import (
	"net/http/httptest"
	"strconv"
	"testing"
)

func createDropdownItemT(t *testing.T, group, value string) DropdownItem {
	t.Helper()
	w := httptest.NewRecorder()
	handleCreateDropdownItem(w, jsonRequest("POST", "/api/dropdown/items", DropdownItemRequest{
		DropdownID: group, DropdownValue: value, UserID: "00001",
	}))
	assertStatus(t, w, 201)
	var d DropdownItem
	decodeData(t, w, &d)
	return d
}

func TestDropdownGroupValues(t *testing.T) {
	setupTestDB(t)

	for _, v := range []string{"高", "中", "低"} {
		createDropdownItemT(t, "priority", v)
	}
	if countRows(t, "dropdown_items") != 3 {
		t.Error("Expected three items in the group")
	}

	// Same value in the same group is a conflict
	w := httptest.NewRecorder()
	handleCreateDropdownItem(w, jsonRequest("POST", "/api/dropdown/items", DropdownItemRequest{
		DropdownID: "priority", DropdownValue: "高", UserID: "00001",
	}))
	assertStatus(t, w, 400)
	if countRows(t, "dropdown_items") != 3 {
		t.Error("Conflict must leave the row count unchanged")
	}

	// Same value in another group is fine
	createDropdownItemT(t, "importance", "高")
}

func TestDropdownIds(t *testing.T) {
	setupTestDB(t)
	createDropdownItemT(t, "honorific", "御中")
	createDropdownItemT(t, "honorific", "様")
	createDropdownItemT(t, "closing_day", "末日")

	w := httptest.NewRecorder()
	handleListDropdownIds(w, httptest.NewRequest("GET", "/api/dropdown/ids", nil))
	assertStatus(t, w, 200)

	var ids []string
	decodeData(t, w, &ids)
	if len(ids) != 2 {
		t.Errorf("Expected 2 distinct group ids, got %v", ids)
	}
}

func TestListDropdownItemsByGroup(t *testing.T) {
	setupTestDB(t)
	createDropdownItemT(t, "honorific", "御中")
	createDropdownItemT(t, "closing_day", "末日")

	w := httptest.NewRecorder()
	handleListDropdownItemsByGroup(w, httptest.NewRequest("GET", "/api/dropdown/items/honorific", nil), "honorific")
	assertStatus(t, w, 200)

	var items []DropdownItem
	decodeData(t, w, &items)
	if len(items) != 1 || items[0].DropdownValue != "御中" {
		t.Errorf("Unexpected group contents: %+v", items)
	}
}

func TestUpdateDropdownItem(t *testing.T) {
	setupTestDB(t)
	a := createDropdownItemT(t, "priority", "高")
	b := createDropdownItemT(t, "priority", "中")

	// Renaming b to a's value is a conflict
	w := httptest.NewRecorder()
	handleUpdateDropdownItem(w, jsonRequest("PUT", "/api/dropdown/items/"+strconv.Itoa(b.ID), DropdownItemRequest{
		DropdownID: "priority", DropdownValue: "高", UserID: "00001",
	}), strconv.Itoa(b.ID))
	assertStatus(t, w, 400)

	// Re-saving a with its own value is not (self excluded from the check)
	w = httptest.NewRecorder()
	handleUpdateDropdownItem(w, jsonRequest("PUT", "/api/dropdown/items/"+strconv.Itoa(a.ID), DropdownItemRequest{
		DropdownID: "priority", DropdownValue: "高", UserID: "00002",
	}), strconv.Itoa(a.ID))
	assertStatus(t, w, 200)

	var updated DropdownItem
	decodeData(t, w, &updated)
	if updated.UpdatedBy != "00002" {
		t.Errorf("updated_by not refreshed: %+v", updated)
	}
}

func TestUpdateDropdownItemNotFound(t *testing.T) {
	setupTestDB(t)

	w := httptest.NewRecorder()
	handleUpdateDropdownItem(w, jsonRequest("PUT", "/api/dropdown/items/999", DropdownItemRequest{
		DropdownID: "priority", DropdownValue: "高", UserID: "00001",
	}), "999")
	assertStatus(t, w, 404)
}

func TestDeleteDropdownItemMissing(t *testing.T) {
	setupTestDB(t)

	w := httptest.NewRecorder()
	handleDeleteDropdownItem(w, httptest.NewRequest("DELETE", "/api/dropdown/items/999", nil), "999")
	assertStatus(t, w, 404)
}

func TestDeleteDropdownGroup(t *testing.T) {
	setupTestDB(t)
	createDropdownItemT(t, "priority", "高")
	createDropdownItemT(t, "priority", "中")
	createDropdownItemT(t, "honorific", "御中")

	w := httptest.NewRecorder()
	handleDeleteDropdownGroup(w, httptest.NewRequest("DELETE", "/api/dropdown/items/by-id/priority", nil), "priority")
	assertStatus(t, w, 200)

	if countRows(t, "dropdown_items") != 1 {
		t.Error("Group delete must remove only the group's items")
	}
}
