package webui

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"booksearch/internal/config"
	"booksearch/internal/cover"
	"booksearch/internal/i18n"
	"booksearch/internal/logger"
	"booksearch/internal/metrics"
	"booksearch/internal/middleware"
	"booksearch/internal/render"
	"booksearch/internal/search"
	"booksearch/internal/widget"
)

//go:embed templates/*.html
var templates embed.FS

var pageTmpl = template.Must(template.ParseFS(templates, "templates/index.html"))

// submitTimeout bounds one server-side submit.
const submitTimeout = 15 * time.Second

type Server struct {
	cfg      *config.Config
	searcher widget.Searcher
	msgs     *i18n.Messages
	html     *render.HTML
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func New(cfg *config.Config, searcher widget.Searcher, log *logrus.Logger) *Server {
	msgs := i18n.New(cfg.UI.Locale)
	return &Server{
		cfg:      cfg,
		searcher: searcher,
		msgs:     msgs,
		html:     render.NewHTML(msgs, cfg.UI.CoverColor),
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/api/search", middleware.CORS(http.HandlerFunc(s.handleAPISearch)))
	mux.HandleFunc("/covers/placeholder.svg", s.handlePlaceholder)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle(s.cfg.Metrics.Path, promhttp.Handler())

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogger(s.log),
		middleware.Metrics,
	)
}

func (s *Server) newWidget(host string, view widget.View) *widget.Widget {
	return widget.New(s.searcher, view, s.msgs, widget.OnOutcome(func(o widget.Outcome) {
		metrics.SubmitsTotal.WithLabelValues(host, string(o)).Inc()
	}))
}

// GET /?q=...
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET", nil)
		return
	}

	base, _ := s.msgs.Tag().Base()
	data := pageData{Lang: base.String()}

	if q := r.URL.Query(); q.Has("q") {
		data.Query = q.Get("q")
		view := &collectView{}
		ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
		defer cancel()
		s.newWidget("page", view).Submit(ctx, data.Query)

		list, err := s.html.List(view.records)
		if err != nil {
			logger.For(r.Context()).WithError(err).Error("render.failed")
			view.status = s.msgs.NetworkError()
		}
		data.Status = view.status
		data.List = list
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		logger.For(r.Context()).WithError(err).Error("page.render.failed")
	}
}

type apiResponse struct {
	Outcome widget.Outcome      `json:"outcome"`
	Status  string              `json:"status"`
	Books   []search.BookRecord `json:"books"`
}

// GET /api/search?q=...
func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET", nil)
		return
	}
	view := &collectView{}
	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()
	out := s.newWidget("api", view).Submit(ctx, r.URL.Query().Get("q"))

	books := view.records
	if books == nil {
		books = []search.BookRecord{}
	}
	writeJSON(w, http.StatusOK, apiResponse{Outcome: out, Status: view.status, Books: books})
}

// GET /covers/placeholder.svg?title=...&bg=...
func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bg := q.Get("bg")
	if bg == "" {
		bg = s.cfg.UI.CoverColor
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(cover.SVG(q.Get("title"), bg))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Structured error envelope
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
