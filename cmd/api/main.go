//	@title			Media Sharing API
//	@version		1.0
//	@description	Backend for a media-sharing app: image/video uploads, a paginated feed, and comments, with lazy video thumbnail generation.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mediashare/service/internal/comment"
	"github.com/mediashare/service/internal/config"
	"github.com/mediashare/service/internal/db"
	"github.com/mediashare/service/internal/media"
	appMiddleware "github.com/mediashare/service/internal/middleware"
	"github.com/mediashare/service/internal/storage"
	"github.com/mediashare/service/internal/thumbnail"

	_ "github.com/mediashare/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	mediaRepo := media.NewRepository(pool)
	commentRepo := comment.NewRepository(pool)

	extractor := thumbnail.NewFFmpegExtractor(cfg.FFmpegPath)
	coordinator := thumbnail.NewCoordinator(mediaRepo, store, extractor)

	mediaSvc := media.NewService(mediaRepo, store, commentRepo, coordinator)
	mediaHandler := media.NewHandler(mediaSvc)

	commentSvc := comment.NewService(commentRepo)
	commentHandler := comment.NewHandler(commentSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/media", func(r chi.Router) {
			r.Use(appMiddleware.MaxPayload(cfg.MaxUploadBytes))
			r.Get("/", mediaHandler.List)
			r.Post("/", mediaHandler.Upload)
			r.Post("/upload-url", mediaHandler.CreateUploadURL)
			r.Post("/direct-upload", mediaHandler.DirectUpload)
			r.Get("/{id}", mediaHandler.Get)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{mediaId}", commentHandler.List)
			r.Post("/{mediaId}", commentHandler.Add)
		})
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Thumbnail generation can run an ffmpeg invocation plus two blob
		// transfers inside a GET, so writes get more headroom than reads.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
