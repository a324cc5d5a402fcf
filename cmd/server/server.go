// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/auth"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/leagues"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/matches"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/stadiums"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/teams"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/config"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/db"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/gateway"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/metrics"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
)

func newServer(cfg *config.Config, database *db.DB) (*http.Server, error) {
	renderer, err := web.New(cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("building renderer: %w", err)
	}

	client := gateway.NewWithHTTPClient(cfg.Backend.BaseURL, &http.Client{
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	})

	secureCookies := cfg.App.Environment == "production"
	sessions := auth.NewSessions(cfg.App.SecretKey, database.Sessions, secureCookies)

	authHandlers := auth.NewHandlers(client, sessions, renderer)
	leagueHandlers := leagues.NewHandlers(client, renderer)
	matchHandlers := matches.NewHandlers(client, renderer)
	teamHandlers := teams.NewHandlers(client, renderer)
	stadiumHandlers := stadiums.NewHandlers(client, renderer)

	// A logout discards everything the session was drafting.
	authHandlers.OnLogout(leagueHandlers.DropSessionState)
	authHandlers.OnLogout(matchHandlers.DropSessionState)
	authHandlers.OnLogout(teamHandlers.DropSessionState)
	authHandlers.OnLogout(stadiumHandlers.DropSessionState)

	router := http.NewServeMux()
	registerRoutes(router, cfg, authHandlers, leagueHandlers, matchHandlers, teamHandlers, stadiumHandlers)

	middleware := []api.Middleware{
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithAuth(sessions),
	}
	if cfg.Features.EnableMetrics {
		middleware = append(middleware, api.WithMetrics)
	}
	handler := api.ChainMiddleware(router, middleware...)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func registerRoutes(
	mux *http.ServeMux,
	cfg *config.Config,
	authHandlers *auth.Handlers,
	leagueHandlers *leagues.Handlers,
	matchHandlers *matches.Handlers,
	teamHandlers *teams.Handlers,
	stadiumHandlers *stadiums.Handlers,
) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if auth.EmployeeFromContext(r.Context()) != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	mux.HandleFunc("GET /login", authHandlers.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandlers.HandleLogin)
	mux.HandleFunc("GET /register", authHandlers.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandlers.HandleRegister)
	mux.HandleFunc("POST /logout", authHandlers.HandleLogout)

	mux.HandleFunc("GET /dashboard", api.RequireAuth(authHandlers.HandleDashboard))

	mux.HandleFunc("GET /tournaments", api.RequireAuth(leagueHandlers.HandleSearchPage))
	mux.HandleFunc("POST /tournaments/select", api.RequireAuth(leagueHandlers.HandleSelect))
	mux.HandleFunc("GET /tournaments/{leagueId}", api.RequireAuth(leagueHandlers.HandleDetail))
	mux.HandleFunc("GET /tournaments/{leagueId}/schedule", api.RequireAuth(leagueHandlers.HandleSchedule))
	mux.HandleFunc("GET /tournaments/{leagueId}/ranking", api.RequireAuth(leagueHandlers.HandleRanking))
	mux.HandleFunc("GET /tournaments/{leagueId}/history/{leagueTeamId}", api.RequireAuth(leagueHandlers.HandleHistory))

	mux.HandleFunc("GET /tournaments/{leagueId}/schedule/select-round", api.RequireAuth(matchHandlers.HandleSelectRound))
	mux.HandleFunc("GET /tournaments/{leagueId}/schedule/add-match", api.RequireAuth(matchHandlers.HandleFormPage))
	mux.HandleFunc("POST /tournaments/{leagueId}/schedule/add-match", api.RequireAuth(matchHandlers.HandleReview))
	mux.HandleFunc("POST /tournaments/{leagueId}/schedule/add-match/search", api.RequireAuth(matchHandlers.HandleSearch))
	mux.HandleFunc("POST /tournaments/{leagueId}/schedule/add-match/select", api.RequireAuth(matchHandlers.HandleSelect))
	mux.HandleFunc("POST /tournaments/{leagueId}/schedule/add-match/confirm", api.RequireAuth(matchHandlers.HandleConfirm))
	mux.HandleFunc("POST /tournaments/{leagueId}/schedule/add-match/cancel", api.RequireAuth(matchHandlers.HandleCancel))

	mux.HandleFunc("GET /teams", api.RequireAuth(teamHandlers.HandleListPage))
	mux.HandleFunc("GET /teams/add", api.RequireAuth(teamHandlers.HandleFormPage))
	mux.HandleFunc("POST /teams/add", api.RequireAuth(teamHandlers.HandleReview))
	mux.HandleFunc("POST /teams/add/search-stadium", api.RequireAuth(teamHandlers.HandleStadiumSearch))
	mux.HandleFunc("POST /teams/add/select-stadium", api.RequireAuth(teamHandlers.HandleStadiumSelect))
	mux.HandleFunc("POST /teams/add/confirm", api.RequireAuth(teamHandlers.HandleConfirm))
	mux.HandleFunc("POST /teams/add/cancel", api.RequireAuth(teamHandlers.HandleCancel))

	mux.HandleFunc("GET /stadiums/add", api.RequireAuth(stadiumHandlers.HandleFormPage))
	mux.HandleFunc("POST /stadiums/add", api.RequireAuth(stadiumHandlers.HandleReview))
	mux.HandleFunc("POST /stadiums/add/confirm", api.RequireAuth(stadiumHandlers.HandleConfirm))
	mux.HandleFunc("POST /stadiums/add/cancel", api.RequireAuth(stadiumHandlers.HandleCancel))
}
