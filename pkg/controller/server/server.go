package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/domain/types"
	"github.com/secmon-lab/repotally/pkg/repository"
	"github.com/secmon-lab/repotally/pkg/utils/errutil"
	"github.com/secmon-lab/repotally/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

type config struct {
	ghSecret types.GitHubWebhookSecret
}

type Option func(*config)

func WithWebhookSecret(secret types.GitHubWebhookSecret) Option {
	return func(cfg *config) {
		cfg.ghSecret = secret
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Post("/webhook/github", func(w http.ResponseWriter, r *http.Request) {
		handleGitHubWebhook(uc, cfg.ghSecret, w, r)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			stats, err := uc.ListRepoStats(r.Context())
			if err != nil {
				errutil.HandleError(r.Context(), "fail to list repository stats", err)
				safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
				return
			}
			writeJSON(w, http.StatusOK, stats)
		})
		r.Get("/stats/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
			fullName := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
			stats, err := uc.GetRepoStats(r.Context(), fullName)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					safeWrite(w, http.StatusNotFound, []byte(`{"error":"not found"}`))
					return
				}
				errutil.HandleError(r.Context(), "fail to get repository stats", err)
				safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
				return
			}
			writeJSON(w, http.StatusOK, stats)
		})
	})

	return &Server{
		mux: r,
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Default().Error("fail to encode response", slog.Any("error", err))
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
