package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"campusfound/internal/api"
	"campusfound/internal/db"
	"campusfound/internal/match"
	"campusfound/internal/model"
	"campusfound/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: campusfound <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: campusfound <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", envOr("CAMPUSFOUND_DB", "campusfound.sqlite3"), "path to SQLite database file")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	database, password, err := initDatabase(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	database.Close()

	printAdminCredentials(*dbPath, password)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", envOr("CAMPUSFOUND_DB", "campusfound.sqlite3"), "path to SQLite database file")
	addr := fs.String("addr", envOr("CAMPUSFOUND_ADDR", ":8080"), "listen address")
	fs.Parse(args)

	// Auto-init on first run.
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		database, password, err := initDatabase(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		database.Close()
		printAdminCredentials(*dbPath, password)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx := context.Background()

	jwtSecret := os.Getenv("CAMPUSFOUND_JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret, err = store.EnsureJWTSecret(ctx, database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load JWT secret")
		}
	}

	// Catch up on reports filed while the service was down.
	matched, err := match.Sweep(ctx, database)
	if err != nil {
		log.Fatal().Err(err).Msg("startup match sweep failed")
	}
	if matched > 0 {
		log.Info().Int("matched", matched).Msg("startup match sweep attached candidates")
	}

	handler := api.LoggingMiddleware(api.NewRouter(database, jwtSecret))
	server := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", *addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// initDatabase creates a new database, applies the schema, and creates the
// admin account with a random password.
func initDatabase(path string) (*sql.DB, string, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}

	cleanup := func() {
		database.Close()
		os.Remove(path)
	}

	if err := db.Migrate(database); err != nil {
		cleanup()
		return nil, "", fmt.Errorf("applying schema: %w", err)
	}

	password, err := generatePassword(16)
	if err != nil {
		cleanup()
		return nil, "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		cleanup()
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	adminEmail := envOr("CAMPUSFOUND_ADMIN_EMAIL", "admin@campus.edu")
	_, err = store.CreateUser(context.Background(), database, "Administrator", adminEmail, string(hash), model.RoleAdmin)
	if err != nil {
		cleanup()
		return nil, "", fmt.Errorf("creating admin user: %w", err)
	}

	return database, password, nil
}

func printAdminCredentials(dbPath, password string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Println("Schema initialized.")
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", envOr("CAMPUSFOUND_ADMIN_EMAIL", "admin@campus.edu"))
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("The admin can change it after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
