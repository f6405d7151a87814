// Package server exposes loaded chat exports over HTTP for the browser viewer.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/internal/render"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Options configures a Server
type Options struct {
	DataDir  string
	Loader   *internal.Loader
	PageSize int
}

type Server struct {
	router   *chi.Mux
	dataDir  string
	loader   *internal.Loader
	pageSize int
}

func New(opts Options) *Server {
	if opts.Loader == nil {
		opts.Loader = internal.NewLoader(nil)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = internal.DefaultPageSize
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		dataDir:  opts.DataDir,
		loader:   opts.Loader,
		pageSize: opts.PageSize,
	}

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.listDatasets)
		r.Delete("/cache", s.clearCache)
		r.Route("/datasets/{dataset}", func(r chi.Router) {
			r.Get("/conversations", s.listConversations)
			r.Get("/conversations/{conversation}", s.getConversation)
			r.Get("/resolve", s.resolve)
			r.Get("/files/*", s.serveFile)
		})
	})

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("data_dir", s.dataDir).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := internal.DiscoverDatasets(r.Context(), s.dataDir)
	if err != nil {
		writeError(w, err)
		return
	}
	if datasets == nil {
		datasets = []internal.Dataset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": datasets})
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.loader.ClearCache(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type conversationsResponse struct {
	internal.Page[internal.SlimConversation]
	Stats  internal.Stats `json:"stats"`
	Source string         `json:"source"`
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return
	}
	idx, source, err := s.loader.LoadIndex(r.Context(), ds)
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", s.pageSize)
	writeJSON(w, http.StatusOK, conversationsResponse{
		Page:   internal.Paginate(idx.Conversations, page, pageSize),
		Stats:  idx.Stats,
		Source: source,
	})
}

type messageView struct {
	internal.Message
	Tooltip internal.TooltipSummary `json:"tooltip"`
	HTML    string                  `json:"html,omitempty"`
}

type conversationView struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	CreateTime *float64      `json:"create_time"`
	UpdateTime *float64      `json:"update_time"`
	Messages   []messageView `json:"messages"`
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.loader.LoadDataset(r.Context(), ds)
	if err != nil {
		writeError(w, err)
		return
	}
	conv, err := result.Conversation(chi.URLParam(r, "conversation"))
	if err != nil {
		writeError(w, err)
		return
	}

	withHTML := r.URL.Query().Get("render") == "html"
	view := conversationView{
		ID:         conv.ID,
		Title:      conv.Title,
		CreateTime: conv.CreateTime,
		UpdateTime: conv.UpdateTime,
		Messages:   make([]messageView, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		mv := messageView{Message: msg, Tooltip: internal.BuildTooltipSummary(msg)}
		if withHTML {
			mv.HTML = render.Markdown(msg.Text)
		}
		view.Messages = append(view.Messages, mv)
	}
	writeJSON(w, http.StatusOK, view)
}

type resolveResponse struct {
	Pointer *internal.ParsedPointer `json:"pointer"`
	Paths   []string                `json:"paths"`
	Tier    string                  `json:"tier"`
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("pointer")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pointer is required"})
		return
	}
	pointer := internal.ParseAssetPointer(raw)

	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.loader.LoadDataset(r.Context(), ds)
	if err != nil {
		writeError(w, err)
		return
	}

	paths, tier := internal.BuildAssetIndex(result.Files).ResolveWithTier(*pointer, internal.ResolveContext{
		ConversationID: q.Get("conversation"),
		Kind:           internal.MediaKind(q.Get("kind")),
	})
	writeJSON(w, http.StatusOK, resolveResponse{Pointer: pointer, Paths: paths, Tier: tier})
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return
	}
	full, err := internal.ConfinedPath(ds.Path, chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, err)
		return
	}
	if mime := internal.MimeForPath(full); mime != "" {
		w.Header().Set("Content-Type", mime)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, full)
}

func (s *Server) dataset(r *http.Request) (internal.Dataset, error) {
	datasets, err := internal.DiscoverDatasets(r.Context(), s.dataDir)
	if err != nil {
		return internal.Dataset{}, err
	}
	return internal.FindDataset(datasets, chi.URLParam(r, "dataset"))
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

// writeError maps loader errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var nf *internal.NotFoundError
	var de *internal.DecodeError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &de):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
