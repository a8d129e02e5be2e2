package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/commentary"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/resolver"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/db"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/repository"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until SIGINT
// or SIGTERM.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	store, err := storage.NewClient(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	if err := db.ConnectMongo(cfg); err != nil {
		logger.Fatal("Failed to connect to MongoDB", logger.ErrorField(err))
	}
	defer db.CloseMongo()
	logger.Info("Connected to MongoDB", logger.String("database", cfg.MongoDBName))

	songRepo := repository.NewMongoSongRepository(db.Collection(cfg.MongoCollection))
	urlResolver := resolver.New(songRepo, store)
	commentGen := commentary.NewGenerator(&commentary.Config{
		APIBaseURL: cfg.CommentAPIBaseURL,
		APIKey:     cfg.CommentAPIKey,
		Model:      cfg.CommentModel,
	})

	apiHandler := NewAPIHandler(songRepo, store, urlResolver, commentGen, cfg)

	router := NewRouter(apiHandler, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting",
			logger.String("addr", cfg.Addr()),
			logger.String("publicUrl", cfg.PublicBaseURL()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// NewRouter wires all API routes and the CORS middleware. CORS wraps the
// router from the outside so preflight OPTIONS requests are answered even
// for routes registered under other methods.
func NewRouter(h *APIHandler, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", h.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/debug/songs", h.DebugSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/{songId}", h.GetAudioHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/lyrics/{songId}", h.GetLyricsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/verify-import-password", h.VerifyImportPasswordHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/import-track", h.ImportTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/track/{songId}", h.DeleteTrackHandler).Methods(http.MethodDelete)
	router.HandleFunc("/api/robot-comment", h.RobotCommentHandler).Methods(http.MethodPost)

	return corsMiddleware(cfg.AllowedOrigins)(router)
}

// corsMiddleware allows cross-origin requests from the configured
// frontend origins only.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
