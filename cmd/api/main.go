package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"hvac-call-insights/internal/logger"
	"hvac-call-insights/internal/report"
	"hvac-call-insights/internal/stageconfig"
	"hvac-call-insights/internal/transcript"
	"hvac-call-insights/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "hvac-call-insights").Info("starting service")

	cfg, err := stageconfig.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load analysis config")
	}
	log.WithField("stages", len(cfg.Stages)).WithField("keywords", len(cfg.Keywords)).Info("analysis config loaded")

	sentences, err := loadSentences(log)
	if err != nil {
		log.WithError(err).Fatal("failed to load transcript")
	}
	log.WithField("sentences", len(sentences)).Info("transcript loaded")

	// analysis is recomputed once per process; the transcript is static
	rep := report.Build(sentences, cfg)
	log.WithField("call_duration_ms", rep.Bounds.Duration).Info("analysis built")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// full dashboard payload
	mux.HandleFunc("/analysis", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analysis")
		reqLog.Info("analysis requested")
		writeJSON(w, rep)
	})

	// on-demand citation matching for one strength/gap item
	mux.HandleFunc("/citations", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "citations")
		stageID := r.URL.Query().Get("stage")
		kind := r.URL.Query().Get("kind")
		item, convErr := strconv.Atoi(r.URL.Query().Get("item"))
		if stageID == "" || kind == "" || convErr != nil {
			reqLog.Warn("bad citations query")
			http.Error(w, "stage, kind and item are required", http.StatusBadRequest)
			return
		}
		matches, err := rep.CitationsFor(stageID, kind, item)
		if err != nil {
			reqLog.WithError(err).Warn("citation lookup failed")
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		reqLog.WithField("stage", stageID).WithField("matches", len(matches)).Info("citations resolved")
		writeJSON(w, matches)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func loadSentences(log *logger.Logger) ([]types.Sentence, error) {
	if url := os.Getenv("TRANSCRIPT_URL"); url != "" {
		log.WithField("transcript_url", url).Info("fetching transcript")
		return transcript.Fetch(url)
	}
	path := envOr("TRANSCRIPT_PATH", "transcript.json")
	log.WithField("transcript_path", path).Info("reading transcript")
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return transcript.LoadXLSX(path)
	}
	return transcript.Load(path)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}
