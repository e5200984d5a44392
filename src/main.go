package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"matchafinder/src/config"
	"matchafinder/src/db"
	"matchafinder/src/handlers"
	"matchafinder/src/middleware"
	"matchafinder/src/render"
	"matchafinder/src/token"
)

// Seeded credential for the protected API. Override via main's users map
// when deploying for real.
var users = map[string]string{
	"admin": "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
}

func main() {
	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr))

	if len(cfg.SigningKey) == 0 {
		log.Fatal("MY_SIGNING_KEY environment variable is not set")
	}

	store, err := db.NewElasticStore(cfg.ElasticURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Client.Stop()

	if err = store.CreateIndexWithMapping(cfg.IndexName, cfg.SchemaPath); err != nil {
		log.Fatal(err)
	}

	if err = store.LoadData(cfg.DataPath); err != nil {
		slog.Error("loading dataset into index failed", "path", cfg.DataPath, "error", err)
	}

	tmpl, err := handlers.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		log.Fatal(err)
	}

	renderer, err := render.New(http.DefaultClient, slog.Default())
	if err != nil {
		log.Fatal(err)
	}

	auth := token.New(cfg.SigningKey, users)

	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		handlers.HandleHome(w, req, renderer, cfg.DataURL)
	})
	r.Get("/data/london_matcha_cafes.json", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, cfg.DataPath)
	})
	r.Get("/places", func(w http.ResponseWriter, req *http.Request) {
		handlers.HandleGetPlacesHTML(w, req, store, tmpl)
	})
	r.Get("/api/places", func(w http.ResponseWriter, req *http.Request) {
		handlers.HandleGetPlacesAPI(w, req, store)
	})
	r.Post("/api/get_token", auth.GetToken)
	r.With(auth.JwtMiddleware).Get("/api/recommend", func(w http.ResponseWriter, req *http.Request) {
		handlers.HandleRecommendAPI(w, req, store)
	})

	slog.Info("server started", "addr", cfg.ServerAddr)
	if err = http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		log.Fatal(err)
	}
}

func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
