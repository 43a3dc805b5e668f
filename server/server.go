package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cancionero/cache"
	"cancionero/config"
	"cancionero/db"
	"cancionero/logger"
	"cancionero/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}

	// Connect to Redis. The service runs without the list cache when Redis
	// is unreachable.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, song list caching disabled", logger.ErrorField(err))
	} else {
		defer cache.CloseRedis()
		logger.Info("Successfully connected to Redis")
	}

	songRepo := repository.NewMySQLSongRepository(db.DB)
	apiHandler := NewAPIHandler(songRepo, cfg)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})
	router.Use(requestLoggingMiddleware)

	// Song API endpoints
	songs := router.PathPrefix("/canciones").Subrouter()
	songs.HandleFunc("", apiHandler.ListSongsHandler).Methods(http.MethodGet)
	songs.HandleFunc("/", apiHandler.ListSongsHandler).Methods(http.MethodGet)
	songs.HandleFunc("", apiHandler.CreateSongHandler).Methods(http.MethodPost)
	songs.HandleFunc("/", apiHandler.CreateSongHandler).Methods(http.MethodPost)
	songs.HandleFunc("/{id:[0-9]+}", apiHandler.GetSongHandler).Methods(http.MethodGet)
	songs.HandleFunc("/{id:[0-9]+}", apiHandler.UpdateSongHandler).Methods(http.MethodPut)
	songs.HandleFunc("/{id:[0-9]+}", apiHandler.DeleteSongHandler).Methods(http.MethodDelete)
	songs.HandleFunc("/{id:[0-9]+}/restaurar", apiHandler.RestoreSongHandler).Methods(http.MethodPatch)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", server.Addr))
		logger.Info("Manage songs via the /canciones endpoints")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLoggingMiddleware tags each request with an id and logs it on
// completion.
func requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("Request handled",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.Duration("elapsed", time.Since(start)))
	})
}
