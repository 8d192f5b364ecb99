package routes

import (
	"net/http"

	"github.com/gamenight/boardgame-league/handlers"
	"github.com/gamenight/boardgame-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler onto the router. Reads are public; all
// mutations sit behind the admin JWT.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	matchHandler *handlers.MatchHandler,
	rankingHandler *handlers.RankingHandler,
	sessionHandler *handlers.SessionHandler,
	dashboardHandler *handlers.DashboardHandler,
	toolsHandler *handlers.ToolsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/login", authHandler.Login)

	router.Get("/dashboard", dashboardHandler.GetSummary)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.GetAllPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.RenamePlayer)
			r.Post("/{playerID}/deactivate", playerHandler.DeactivatePlayer)
			r.Post("/{playerID}/reactivate", playerHandler.ReactivatePlayer)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.GetAllGames)
		r.Get("/{gameID}", gameHandler.GetGameByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/", gameHandler.CreateGame)
			r.Post("/bgg", gameHandler.CreateGameFromBGG)
			r.Post("/bgg/sync", gameHandler.SyncAllGamesFromBGG)
			r.Put("/{gameID}", gameHandler.UpdateGame)
			r.Post("/{gameID}/bgg/sync", gameHandler.SyncGameFromBGG)
			r.Post("/{gameID}/cover", gameHandler.UploadCover)
			r.Post("/{gameID}/deactivate", gameHandler.DeactivateGame)
			r.Post("/{gameID}/reactivate", gameHandler.ReactivateGame)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListRecentMatches)
		r.Get("/{matchID}", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/", matchHandler.CreateMatch)
			r.Put("/{matchID}", matchHandler.ReplaceMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
		})
	})

	router.Route("/rankings", func(r chi.Router) {
		r.Get("/elo", rankingHandler.GetEloRanking)
		r.Get("/winrate", rankingHandler.GetWinRateRanking)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/recompute", rankingHandler.RecomputeRatings)
		})
	})

	router.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionHandler.ListSessions)
		r.Get("/{sessionID}", sessionHandler.GetSessionByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/", sessionHandler.CreateSession)
		})
	})

	router.Post("/tools/first-player", toolsHandler.DrawFirstPlayer)

	router.Get("/ws/leaderboard", webSocketHandler.ServeLeaderboard)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}
