package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/SAS-Sasao/sales-manage/internal/response"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfgPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	initOnly := flag.Bool("init", false, "Run migrations and seeds, then exit")
	flag.Parse()

	cfg := loadConfig(*cfgPath)
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}

	if err := initDB(cfg.DB); err != nil {
		zlog.Fatal().Err(err).Msg("DB init failed")
	}
	defer db.Close()
	seedDB()

	if *initOnly {
		zlog.Info().Str("db", cfg.DB).Msg("database initialized")
		return
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket)
	mux.HandleFunc("/api/", routeAPI)

	// Static SPA, production only. Unknown paths fall back to index.html
	// so client-side routing works.
	if cfg.Env == "production" {
		staticDir := cfg.StaticDir
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
		})
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: logging(mux),
	}

	go func() {
		zlog.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown error")
	}
	zlog.Info().Msg("server stopped")
}

// routeAPI dispatches /api/ requests with a simple path-split router.
func routeAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	path = strings.TrimSuffix(path, "/")
	parts := strings.Split(path, "/")

	switch {
	// Auth
	case path == "register" && r.Method == "POST":
		handleRegister(w, r)
	case path == "login" && r.Method == "POST":
		handleLogin(w, r)

	// Tax rates
	case parts[0] == "tax-rates" && len(parts) == 1 && r.Method == "GET":
		handleListTaxRates(w, r)
	case parts[0] == "tax-rates" && len(parts) == 1 && r.Method == "POST":
		handleCreateTaxRate(w, r)
	case parts[0] == "tax-rates" && len(parts) == 2 && r.Method == "GET":
		handleGetTaxRate(w, r, parts[1])
	case parts[0] == "tax-rates" && len(parts) == 2 && r.Method == "PUT":
		handleUpdateTaxRate(w, r, parts[1])
	case parts[0] == "tax-rates" && len(parts) == 2 && r.Method == "DELETE":
		handleDeleteTaxRate(w, r, parts[1])

	// Locations
	case parts[0] == "locations" && len(parts) == 1 && r.Method == "GET":
		handleListLocations(w, r)
	case parts[0] == "locations" && len(parts) == 1 && r.Method == "POST":
		handleCreateLocation(w, r)
	case parts[0] == "locations" && len(parts) == 2 && r.Method == "GET":
		handleGetLocation(w, r, parts[1])
	case parts[0] == "locations" && len(parts) == 2 && r.Method == "PUT":
		handleUpdateLocation(w, r, parts[1])
	case parts[0] == "locations" && len(parts) == 2 && r.Method == "DELETE":
		handleDeleteLocation(w, r, parts[1])

	// Dropdown items
	case parts[0] == "dropdown" && len(parts) == 2 && parts[1] == "ids" && r.Method == "GET":
		handleListDropdownIds(w, r)
	case parts[0] == "dropdown" && len(parts) == 2 && parts[1] == "items" && r.Method == "GET":
		handleListDropdownItems(w, r)
	case parts[0] == "dropdown" && len(parts) == 2 && parts[1] == "items" && r.Method == "POST":
		handleCreateDropdownItem(w, r)
	case parts[0] == "dropdown" && len(parts) == 3 && parts[1] == "items" && r.Method == "GET":
		handleListDropdownItemsByGroup(w, r, parts[2])
	case parts[0] == "dropdown" && len(parts) == 3 && parts[1] == "items" && r.Method == "PUT":
		handleUpdateDropdownItem(w, r, parts[2])
	case parts[0] == "dropdown" && len(parts) == 3 && parts[1] == "items" && r.Method == "DELETE":
		handleDeleteDropdownItem(w, r, parts[2])
	case parts[0] == "dropdown" && len(parts) == 4 && parts[1] == "items" && parts[2] == "by-id" && r.Method == "DELETE":
		handleDeleteDropdownGroup(w, r, parts[3])

	// Customers
	case parts[0] == "customers" && len(parts) == 1 && r.Method == "GET":
		handleListCustomers(w, r)
	case parts[0] == "customers" && len(parts) == 1 && r.Method == "POST":
		handleCreateCustomer(w, r)
	case parts[0] == "customers" && len(parts) == 3 && parts[1] == "code" && r.Method == "GET":
		handleGetCustomerByCode(w, r, parts[2])
	case parts[0] == "customers" && len(parts) == 2 && r.Method == "GET":
		handleGetCustomer(w, r, parts[1])
	case parts[0] == "customers" && len(parts) == 2 && r.Method == "PUT":
		handleUpdateCustomer(w, r, parts[1])
	case parts[0] == "customers" && len(parts) == 2 && r.Method == "DELETE":
		handleDeleteCustomer(w, r, parts[1])

	// Staff
	case parts[0] == "staff" && len(parts) == 1 && r.Method == "GET":
		handleListStaff(w, r)
	case parts[0] == "staff" && len(parts) == 1 && r.Method == "POST":
		handleCreateStaff(w, r)
	case parts[0] == "staff" && len(parts) == 3 && parts[1] == "code" && r.Method == "GET":
		handleGetStaffByCode(w, r, parts[2])
	case parts[0] == "staff" && len(parts) == 2 && r.Method == "GET":
		handleGetStaff(w, r, parts[1])
	case parts[0] == "staff" && len(parts) == 2 && r.Method == "PUT":
		handleUpdateStaff(w, r, parts[1])
	case parts[0] == "staff" && len(parts) == 2 && r.Method == "DELETE":
		handleDeleteStaff(w, r, parts[1])

	// Export
	case parts[0] == "export" && len(parts) == 2 && r.Method == "GET":
		handleExport(w, r, parts[1])

	default:
		jsonErr(w, "not found", 404)
	}
}

func jsonResp(w http.ResponseWriter, data interface{}) {
	response.JSON(w, data)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	response.Err(w, msg, code)
}

func decodeBody(r *http.Request, v interface{}) error {
	return response.DecodeBody(r, v)
}
