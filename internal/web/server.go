// Package web provides the HTTP server and handlers for Golden's profile site.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/directory"
	"github.com/evcraddock/golden-profile/internal/feed"
	"github.com/evcraddock/golden-profile/internal/logging"
	"github.com/evcraddock/golden-profile/internal/persona"
	"github.com/evcraddock/golden-profile/internal/submission"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Comments  comment.Gateway
	Feed      *feed.Feed
	Boards    *submission.Boards
	Persona   *persona.Client
	Directory *directory.Client
	Logger    zerolog.Logger

	// PollInterval is how often the browser re-fetches the message feed.
	PollInterval time.Duration
}

// Server is the web UI HTTP server.
type Server struct {
	comments  comment.Gateway
	feed      *feed.Feed
	boards    *submission.Boards
	persona   *persona.Client
	directory *directory.Client
	log       zerolog.Logger
	poll      time.Duration
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server over the given collaborators.
func NewServer(d Deps) (*Server, error) {
	if d.Comments == nil || d.Feed == nil || d.Boards == nil || d.Persona == nil || d.Directory == nil {
		return nil, errors.New("web server requires comments, feed, boards, persona and directory")
	}
	if d.PollInterval <= 0 {
		d.PollInterval = feed.DefaultInterval
	}

	funcMap := template.FuncMap{
		"formatDate": tmplFormatDate,
		"formatTime": tmplFormatTime,
		"pollSpec":   tmplPollSpec,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		comments:  d.Comments,
		feed:      d.Feed,
		boards:    d.Boards,
		persona:   d.Persona,
		directory: d.Directory,
		log:       d.Logger.With().Str("component", "web").Logger(),
		poll:      d.PollInterval,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/slides/", s.handleSlideRoute)
	s.mux.HandleFunc("/messages", s.handleMessages)
	s.mux.HandleFunc("/messages/refresh", s.handleMessagesRefresh)
	s.mux.HandleFunc("/ai", s.handleAI)
	s.mux.HandleFunc("/ai/chat", s.handleAIChat)
	s.mux.HandleFunc("/ai/meet", s.handleAIMeet)
	s.mux.HandleFunc("/api/comments", s.handleAPIComments)
	s.mux.HandleFunc("/api/openai", s.handleAPIOpenAI)
	s.mux.HandleFunc("/api/random-user", s.handleAPIRandomUser)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.handler = logging.RequestLogger(s.mux)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run starts the feed poller and the board pruner, then serves HTTP on addr
// until ctx is cancelled. In-flight requests get a grace period to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.feed.Start(ctx)
	defer s.feed.Stop()

	go s.pruneBoards(ctx, time.Minute)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("starting web UI")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down web UI")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// pruneBoards expires idle page boards until ctx is cancelled.
func (s *Server) pruneBoards(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.boards.Prune(); n > 0 {
				s.log.Debug().Int("pruned", n).Int("live", s.boards.Len()).Msg("expired idle boards")
			}
		}
	}
}

// handleSlideRoute routes /slides/{slot}/* requests.
func (s *Server) handleSlideRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/slides/")

	if slot, ok := strings.CutSuffix(path, "/comment"); ok {
		s.handleCommentPost(w, r, slot)
		return
	}
	if slot, ok := strings.CutSuffix(path, "/like"); ok {
		s.handleLikePost(w, r, slot)
		return
	}

	http.NotFound(w, r)
}

// Template helper functions

func tmplFormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2 Jan 2006")
}

func tmplFormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("3:04:05 PM")
}

// tmplPollSpec renders an hx-trigger polling clause, e.g. "every 5s".
func tmplPollSpec(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("every %ds", secs)
}
