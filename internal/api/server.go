package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/Sena-ops/pygate/internal/model"
	"github.com/Sena-ops/pygate/internal/storage"
)

// Store é o contrato mínimo que a API precisa do histórico.
type Store interface {
	ListRuns(limit int) ([]storage.RunRow, error)
	LoadRun(id string) (model.Report, model.Verdict, error)
	LatestRunID() (string, error)
}

// Server expõe o histórico de execuções em leitura (CI dashboards).
type Server struct {
	DB  Store
	Log *zap.SugaredLogger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/runs", s.handleListRuns)
	r.Get("/api/v1/runs/latest", s.handleLatest)
	r.Get("/api/v1/runs/{id}", s.handleGetRun)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.DB.ListRuns(limit)
	if err != nil {
		s.Log.Errorw("Erro ao listar execuções", "erro", err)
		render.Status(r, 500)
		render.JSON(w, r, map[string]string{"error": "internal error"})
		return
	}
	render.JSON(w, r, map[string]any{"runs": runs})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	id, err := s.DB.LatestRunID()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			render.Status(r, 404)
			render.JSON(w, r, map[string]string{"error": "nenhuma execução registrada"})
			return
		}
		s.Log.Errorw("Erro ao buscar última execução", "erro", err)
		render.Status(r, 500)
		render.JSON(w, r, map[string]string{"error": "internal error"})
		return
	}
	s.renderRun(w, r, id)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	s.renderRun(w, r, chi.URLParam(r, "id"))
}

func (s *Server) renderRun(w http.ResponseWriter, r *http.Request, id string) {
	rep, verdict, err := s.DB.LoadRun(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			render.Status(r, 404)
			render.JSON(w, r, map[string]string{"error": "execução não encontrada"})
			return
		}
		s.Log.Errorw("Erro ao carregar execução", "id", id, "erro", err)
		render.Status(r, 500)
		render.JSON(w, r, map[string]string{"error": "internal error"})
		return
	}
	render.JSON(w, r, map[string]any{
		"id":      id,
		"report":  rep,
		"verdict": verdict,
	})
}
