package main

import "testing"

func TestNextCodeEmptyTable(t *testing.T) {
	setupTestDB(t)

	code, err := nextCode(db, "locations", "location_code", locCodeWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if code != "01" {
		t.Errorf("Expected first location code 01, got %s", code)
	}

	userID, err := nextCode(db, "users", "user_id", userIDWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if userID != "00001" {
		t.Errorf("Expected first user_id 00001, got %s", userID)
	}
}

func TestNextCodeSequence(t *testing.T) {
	setupTestDB(t)

	db.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES ('01','東京','00001','00001')")
	db.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES ('02','大阪','00001','00001')")

	code, err := nextCode(db, "locations", "location_code", locCodeWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if code != "03" {
		t.Errorf("Expected next code 03 after 01 and 02, got %s", code)
	}
}

func TestNextCodeIgnoresNonNumeric(t *testing.T) {
	setupTestDB(t)

	// CAST turns non-numeric codes into 0, which never wins the MAX
	db.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES ('XX','不正','00001','00001')")

	code, err := nextCode(db, "locations", "location_code", locCodeWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if code != "01" {
		t.Errorf("Expected 01 when only non-numeric codes exist, got %s", code)
	}

	db.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES ('07','名古屋','00001','00001')")
	code, err = nextCode(db, "locations", "location_code", locCodeWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if code != "08" {
		t.Errorf("Expected 08, got %s", code)
	}
}

func TestNextCodePastWidth(t *testing.T) {
	setupTestDB(t)

	// No overflow guard: past the padded width the code simply grows longer
	db.Exec("INSERT INTO locations (location_code, location_name, created_by, updated_by) VALUES ('99','最終','00001','00001')")

	code, err := nextCode(db, "locations", "location_code", locCodeWidth)
	if err != nil {
		t.Fatalf("nextCode: %v", err)
	}
	if code != "100" {
		t.Errorf("Expected 100 past the two-digit width, got %s", code)
	}
}
