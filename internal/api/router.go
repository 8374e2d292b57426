package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	lostHandler := &LostItemsHandler{DB: db}
	foundHandler := &FoundItemsHandler{DB: db}
	claimsHandler := &ClaimsHandler{DB: db}
	notificationsHandler := &NotificationsHandler{DB: db}
	statsHandler := &StatsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session management.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Lost-item reports.
	mux.Handle("GET /api/lost-items", authMW(http.HandlerFunc(lostHandler.List)))
	mux.Handle("POST /api/lost-items", authMW(http.HandlerFunc(lostHandler.Create)))
	mux.Handle("GET /api/lost-items/mine", authMW(http.HandlerFunc(lostHandler.Mine)))
	mux.Handle("GET /api/lost-items/{id}", authMW(http.HandlerFunc(lostHandler.Get)))
	mux.Handle("GET /api/lost-items/{id}/photo", authMW(http.HandlerFunc(lostHandler.Photo)))

	// Found-item catalog.
	mux.Handle("GET /api/found-items", authMW(http.HandlerFunc(foundHandler.List)))
	mux.Handle("POST /api/found-items", authMW(http.HandlerFunc(foundHandler.Create)))
	mux.Handle("GET /api/found-items/{id}", authMW(http.HandlerFunc(foundHandler.Get)))
	mux.Handle("GET /api/found-items/{id}/photo", authMW(http.HandlerFunc(foundHandler.Photo)))

	// Claims: filing and own view (all users), review and decisions (admin).
	mux.Handle("POST /api/claims", authMW(http.HandlerFunc(claimsHandler.Create)))
	mux.Handle("GET /api/claims/mine", authMW(http.HandlerFunc(claimsHandler.Mine)))
	mux.Handle("GET /api/claims/{id}/photo", authMW(http.HandlerFunc(claimsHandler.ProofPhoto)))
	mux.Handle("GET /api/claims", authMW(RequireAdmin(http.HandlerFunc(claimsHandler.List))))
	mux.Handle("POST /api/claims/{id}/decision", authMW(RequireAdmin(http.HandlerFunc(claimsHandler.Decide))))

	// Notifications.
	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.List)))
	mux.Handle("POST /api/notifications/{id}/read", authMW(http.HandlerFunc(notificationsHandler.MarkRead)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(RequireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("GET /api/users/{id}", authMW(RequireAdmin(http.HandlerFunc(usersHandler.Get))))

	// Stats.
	mux.Handle("GET /api/stats", authMW(http.HandlerFunc(statsHandler.Get)))

	return mux
}
