package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"biglabo/internal/configstore"
)

type savedConfigView struct {
	Ref       string
	Name      string
	CreatedAt string
	Creator   string
}

type configListView struct {
	Configs []savedConfigView
	Error   string
}

// handleConfigs saves the current session under a name (POST) or lists the
// saved configurations (GET). Both respond with the list partial.
func (s *Server) handleConfigs(w http.ResponseWriter, r *http.Request) {
	if s.configs == nil {
		http.Error(w, "Saved configurations are not enabled", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.renderConfigList(w, r, "")
	case http.MethodPost:
		s.saveConfig(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		s.renderConfigListStatus(w, r, "保存名を入力してください", http.StatusUnprocessableEntity)
		return
	}
	creator := strings.TrimSpace(r.PostFormValue("creator"))

	s.mu.Lock()
	rec := s.sim.Export(creator, time.Now())
	s.mu.Unlock()

	saved, err := s.configs.SaveConfiguration(r.Context(), name, rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save configuration", "name", name, "error", err)
		s.renderConfigListStatus(w, r, "保存に失敗しました", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Saved configuration", "ref", saved.Ref, "name", saved.Name)
	s.renderConfigList(w, r, "")
}

// handleLoadConfig imports a saved configuration into the session and reloads
// the page.
func (s *Server) handleLoadConfig(w http.ResponseWriter, r *http.Request) {
	if s.configs == nil {
		http.Error(w, "Saved configurations are not enabled", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	ref := strings.TrimSpace(r.PostFormValue("ref"))
	if ref == "" {
		http.Error(w, "Missing configuration reference", http.StatusBadRequest)
		return
	}

	saved, err := s.configs.LoadConfiguration(r.Context(), ref)
	if err != nil {
		if errors.Is(err, configstore.ErrNotFound) {
			http.Error(w, "Configuration not found", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to load configuration", "ref", ref, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.sim.Import(saved.Record)
	s.mu.Unlock()

	slog.InfoContext(r.Context(), "Loaded configuration into session", "ref", ref, "name", saved.Name)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) renderConfigList(w http.ResponseWriter, r *http.Request, errMsg string) {
	s.renderConfigListStatus(w, r, errMsg, http.StatusOK)
}

func (s *Server) renderConfigListStatus(w http.ResponseWriter, r *http.Request, errMsg string, status int) {
	view := configListView{Error: errMsg}

	list, err := s.configs.ListConfigurations(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list configurations", "error", err)
		if view.Error == "" {
			view.Error = "保存一覧を取得できませんでした"
		}
	}
	for _, c := range list {
		view.Configs = append(view.Configs, savedConfigView{
			Ref:       c.Ref,
			Name:      c.Name,
			CreatedAt: c.CreatedAt.Format("2006-01-02 15:04"),
			Creator:   c.Record.Creator,
		})
	}

	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	s.render(w, r, "configs.html", view)
}
