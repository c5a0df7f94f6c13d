package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"shiftdash/pkg/engine"
	"shiftdash/pkg/report"
	"shiftdash/pkg/schema"
)

// devserver serves the dashboard page and the WASM bundle for local
// development, plus a POST /api/build endpoint that runs the same pipeline
// server-side. The deployed page never talks to a server; this exists so the
// report logic can be poked with curl while iterating.

const maxUploadBytes = 64 << 20

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	port := envOr("PORT", "8080")
	staticDir := envOr("STATIC_DIR", "web")
	settingsFile := envOr("SETTINGS_FILE", "web/settings.json")

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/api/build", handleBuild(settingsFile))
	r.Get("/settings.json", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, settingsFile)
	})
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	log.Printf("devserver listening on :%s (static %s)", port, staticDir)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

// handleBuild accepts multipart CSV uploads under the "files" field plus an
// optional "target_date" form value and returns the BuildResult JSON.
func handleBuild(settingsFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, `{"error":"invalid multipart form"}`, http.StatusBadRequest)
			return
		}

		var inputs []engine.Input
		if req.MultipartForm != nil {
			for _, fh := range req.MultipartForm.File["files"] {
				f, err := fh.Open()
				if err != nil {
					http.Error(w, `{"error":"failed to open upload"}`, http.StatusBadRequest)
					return
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					http.Error(w, `{"error":"failed to read upload"}`, http.StatusBadRequest)
					return
				}
				inputs = append(inputs, engine.ParseInput(fh.Filename, data))
			}
		}

		settingsData, err := os.ReadFile(settingsFile)
		if err != nil {
			// Missing settings degrade to unknown-only bucketing, same as
			// the browser path.
			settingsData = nil
		}
		settings := schema.ParseSettings(settingsData)

		result, err := report.BuildAll(inputs, settings, req.FormValue("target_date"), report.Options{})
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, report.EncodeError(err))
			return
		}
		io.WriteString(w, report.Encode(result))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
