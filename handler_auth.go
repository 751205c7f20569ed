package main

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonErr(w, "メールアドレスとパスワードは必須です", 400)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}

	// Duplicate check, ID generation and insert share one transaction so
	// concurrent registrations serialize on the write lock.
	tx, err := db.Begin()
	if err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", req.Email).Scan(&count); err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}
	if count > 0 {
		jsonErr(w, "このメールアドレスは既に登録されています", 400)
		return
	}

	userID, err := nextCode(tx, "users", "user_id", userIDWidth)
	if err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}
	if _, err := tx.Exec("INSERT INTO users (user_id, email, password) VALUES (?, ?, ?)", userID, req.Email, string(hash)); err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}
	if err := tx.Commit(); err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}

	var u User
	if err := db.QueryRow("SELECT id, user_id, email, created_at, updated_at FROM users WHERE user_id = ?", userID).
		Scan(&u.ID, &u.UserID, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		jsonErr(w, "ユーザー登録に失敗しました", 500)
		return
	}
	w.WriteHeader(201)
	jsonResp(w, u)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if req.UserID == "" || req.Password == "" {
		jsonErr(w, "ユーザーIDとパスワードは必須です", 400)
		return
	}

	// Unknown ID and wrong password return the identical response so the
	// two cases cannot be told apart.
	var u User
	var passwordHash string
	err := db.QueryRow("SELECT id, user_id, email, password, created_at, updated_at FROM users WHERE user_id = ?", req.UserID).
		Scan(&u.ID, &u.UserID, &u.Email, &passwordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		jsonErr(w, "ユーザーIDまたはパスワードが正しくありません", 401)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		jsonErr(w, "ユーザーIDまたはパスワードが正しくありません", 401)
		return
	}

	jsonResp(w, u)
}
