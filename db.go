package main

import (
	"database/sql"
	"fmt"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var db *sql.DB

func initDB(path string) error {
	// Close previous connection if any (prevents goroutine leaks in tests)
	if db != nil {
		db.Close()
	}
	var err error
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// _txlock=immediate takes the write lock at Begin, before any reads
	// inside the transaction, so concurrent creators queue on busy_timeout
	// instead of hitting SQLITE_BUSY after their MAX-scan. The _pragma
	// params are applied to every pooled connection.
	dsn := path + sep + "_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(10000)" +
		"&_pragma=foreign_keys(1)"
	db, err = sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	// SQLite handles 1 writer + multiple readers with WAL mode
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	return runMigrations()
}

func runMigrations() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tax_rates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tax_code TEXT UNIQUE NOT NULL,
			tax_name TEXT NOT NULL,
			rate REAL NOT NULL,
			calculation_type INTEGER NOT NULL,
			created_by TEXT NOT NULL,
			updated_by TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			location_code TEXT UNIQUE NOT NULL,
			location_name TEXT NOT NULL,
			created_by TEXT NOT NULL,
			updated_by TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS dropdown_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dropdown_id TEXT NOT NULL,
			dropdown_value TEXT NOT NULL,
			created_by TEXT NOT NULL,
			updated_by TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME,
			UNIQUE(dropdown_id, dropdown_value)
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_code TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			department_name TEXT,
			honorific TEXT NOT NULL,
			postal_code TEXT,
			address1 TEXT,
			address2 TEXT,
			phone_number TEXT,
			fax_number TEXT,
			email TEXT,
			invoice_number TEXT,
			invoice_issuance TEXT NOT NULL,
			invoice_method TEXT,
			closing_day TEXT,
			payment_day TEXT,
			payment_site_day TEXT,
			tax_processing TEXT NOT NULL,
			tax_rounding TEXT NOT NULL,
			staff_id INTEGER,
			wo_special_code TEXT,
			created_by TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_by TEXT,
			updated_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			staff_code TEXT NOT NULL UNIQUE,
			staff_name TEXT NOT NULL,
			email TEXT,
			department TEXT,
			position TEXT,
			phone_number TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_by TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_by TEXT,
			updated_at DATETIME
		)`,
	}
	for _, t := range tables {
		if _, err := db.Exec(t); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}

func seedDB() {
	// Development login accounts
	seedUsers := []struct {
		userID, email, password string
	}{
		{"00001", "user1@example.com", "password1"},
		{"00002", "user2@example.com", "password2"},
	}
	for _, u := range seedUsers {
		var count int
		db.QueryRow("SELECT COUNT(*) FROM users WHERE user_id = ?", u.userID).Scan(&count)
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			zlog.Error().Err(err).Str("user_id", u.userID).Msg("seed: hash password")
			continue
		}
		db.Exec("INSERT INTO users (user_id, email, password) VALUES (?, ?, ?)", u.userID, u.email, string(hash))
	}

	// Initial tax rates, keyed by name so re-running never duplicates
	taxRates := []struct {
		name            string
		rate            float64
		calculationType int
	}{
		{"10%", 10, 3},
		{"8%(軽減税率)", 8, 3},
		{"8%(経過措置)", 8, 3},
		{"非課税", 0, 3},
		{"対象外", 0, 3},
	}
	for _, tr := range taxRates {
		var count int
		db.QueryRow("SELECT COUNT(*) FROM tax_rates WHERE tax_name = ?", tr.name).Scan(&count)
		if count > 0 {
			continue
		}
		code, err := nextCode(db, "tax_rates", "tax_code", taxCodeWidth)
		if err != nil {
			zlog.Error().Err(err).Str("tax_name", tr.name).Msg("seed: tax code")
			continue
		}
		db.Exec("INSERT INTO tax_rates (tax_code, tax_name, rate, calculation_type, created_by, updated_by) VALUES (?, ?, ?, ?, ?, ?)",
			code, tr.name, tr.rate, tr.calculationType, "00001", "00001")
	}

	// Staff master
	var staffCount int
	db.QueryRow("SELECT COUNT(*) FROM staff").Scan(&staffCount)
	if staffCount == 0 {
		seedStaff := [][]interface{}{
			{"00001", "山田 太郎", "yamada@example.com", "営業部", "部長", "0312345678"},
			{"00002", "鈴木 一郎", "suzuki@example.com", "営業部", "課長", "0312345679"},
			{"00003", "佐藤 花子", "sato@example.com", "経理部", "主任", "0312345680"},
		}
		for _, s := range seedStaff {
			db.Exec(`INSERT INTO staff (staff_code, staff_name, email, department, position, phone_number, is_active, created_by)
				VALUES (?, ?, ?, ?, ?, ?, 1, 'system')`, s...)
		}
	}

	// Sample customer
	var customerCount int
	db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&customerCount)
	if customerCount == 0 {
		db.Exec(`INSERT INTO customers (
			customer_code, customer_name, department_name, honorific, postal_code,
			address1, address2, phone_number, fax_number, email,
			invoice_number, invoice_issuance, invoice_method, closing_day, payment_day,
			payment_site_day, tax_processing, tax_rounding, staff_id, wo_special_code, created_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			"0000000000000001", "サンプル株式会社", "営業部", "御中", "1000001",
			"東京都千代田区千代田1-1", "千代田ビル10F", "0312345678", "0312345679", "sample@example.com",
			"1234567890123", "有", "郵送", "末日", "翌月末日",
			"", "請求書単位", "切捨て", 1, "", "system")
	}

	// Dropdown groups used by the master screens
	var dropdownCount int
	db.QueryRow("SELECT COUNT(*) FROM dropdown_items").Scan(&dropdownCount)
	if dropdownCount == 0 {
		seedItems := [][2]string{
			{"honorific", "御中"},
			{"honorific", "様"},
			{"honorific", "殿"},
			{"invoice_method", "郵送"},
			{"invoice_method", "メール"},
			{"invoice_method", "FAX"},
			{"closing_day", "末日"},
			{"closing_day", "20日"},
			{"closing_day", "25日"},
		}
		for _, item := range seedItems {
			db.Exec("INSERT INTO dropdown_items (dropdown_id, dropdown_value, created_by) VALUES (?, ?, 'system')",
				item[0], item[1])
		}
	}
}
