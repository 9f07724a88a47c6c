package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/directory"
	"github.com/evcraddock/golden-profile/internal/feed"
	"github.com/evcraddock/golden-profile/internal/persona"
	"github.com/evcraddock/golden-profile/internal/submission"
)

// slide is one carousel photo.
type slide struct {
	ID     string
	Title  string
	Image  string
	Alt    string
	Accent string
}

var slides = []slide{
	{ID: "cute", Title: "Felt cute might delete later", Image: "/static/photos/cute.svg", Alt: "Cute Cat", Accent: "blue"},
	{ID: "lazy", Title: "Unemployment-maxxing", Image: "/static/photos/lazy.svg", Alt: "Lazy Cat", Accent: "green"},
	{ID: "christmas", Title: "Merry Christmas", Image: "/static/photos/christmas.svg", Alt: "Christmas Cat", Accent: "red"},
}

func findSlide(id string) (slide, bool) {
	for _, sl := range slides {
		if sl.ID == id {
			return sl, true
		}
	}
	return slide{}, false
}

type slotData struct {
	BoardID string
	Slide   slide
	Slot    submission.Slot
	Notice  *submission.Notice
}

type messagesData struct {
	Comments []*comment.Comment
	Status   feed.Status
	Poll     time.Duration
}

type indexData struct {
	BoardID  string
	Slots    []slotData
	Messages messagesData
}

type replyData struct {
	Reply  *persona.Reply
	Notice *submission.Notice
}

type profileData struct {
	Profile directory.Profile
	Notice  *submission.Notice
}

// handleIndex renders the profile page and issues a fresh board for it.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, board := s.boards.New()
	s.render(w, "index.html", s.indexData(id, board, "", nil))
}

func (s *Server) indexData(boardID string, board *submission.Board, noticeSlot string, notice *submission.Notice) indexData {
	data := indexData{BoardID: boardID, Messages: s.messagesData()}
	for _, sl := range slides {
		slot, err := board.Slot(sl.ID)
		if err != nil {
			continue
		}
		sd := slotData{BoardID: boardID, Slide: sl, Slot: slot}
		if sl.ID == noticeSlot {
			sd.Notice = notice
		}
		data.Slots = append(data.Slots, sd)
	}
	return data
}

func (s *Server) messagesData() messagesData {
	comments, status := s.feed.Snapshot()
	return messagesData{Comments: comments, Status: status, Poll: s.poll}
}

// handleCommentPost submits a slot's comment via HTMX or form POST.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request, slotID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sl, ok := findSlide(slotID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	boardID := r.FormValue("board")
	board, err := s.boards.Get(boardID)
	if err != nil {
		s.expired(w, r)
		return
	}

	out := board.Submit(r.Context(), sl.ID, comment.Input{
		Name:    r.FormValue("name"),
		Message: r.FormValue("message"),
	})
	notice := out.Notice()
	if out.Err != nil && !errors.Is(out.Err, comment.ErrValidation) {
		s.logFor(r).Warn().Err(out.Err).Str("slot", sl.ID).Msg("comment not posted")
	}

	s.respondSlot(w, r, boardID, board, sl, &notice)
}

// handleLikePost acknowledges a like. Likes are not stored.
func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request, slotID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sl, ok := findSlide(slotID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	boardID := r.FormValue("board")
	board, err := s.boards.Get(boardID)
	if err != nil {
		s.expired(w, r)
		return
	}

	if _, err := board.Like(sl.ID); err != nil {
		http.NotFound(w, r)
		return
	}
	notice := submission.LikeNotice()

	s.respondSlot(w, r, boardID, board, sl, &notice)
}

// respondSlot returns the slot partial to HTMX and the whole page otherwise.
func (s *Server) respondSlot(w http.ResponseWriter, r *http.Request, boardID string, board *submission.Board, sl slide, notice *submission.Notice) {
	if r.Header.Get("HX-Request") == "true" {
		slot, err := board.Slot(sl.ID)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.renderPartial(w, "slot", slotData{BoardID: boardID, Slide: sl, Slot: slot, Notice: notice})
		return
	}

	s.render(w, "index.html", s.indexData(boardID, board, sl.ID, notice))
}

// expired handles a post against a board that no longer exists.
func (s *Server) expired(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
		s.renderPartial(w, "toast", &submission.Notice{
			Level:       submission.LevelError,
			Title:       "Error",
			Description: submission.ErrUnknownBoard.Error(),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleMessages renders the message feed partial.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderPartial(w, "messages", s.messagesData())
}

// handleMessagesRefresh queries the store now and renders the feed partial.
func (s *Server) handleMessagesRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.feed.Refresh(r.Context()); err != nil {
		s.logFor(r).Warn().Err(err).Msg("manual refresh failed")
	}

	if r.Header.Get("HX-Request") == "true" {
		s.renderPartial(w, "messages", s.messagesData())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAI renders the AI features page.
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.render(w, "ai.html", nil)
}

// handleAIChat asks Golden a question and renders the reply partial.
func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	reply, err := s.persona.Reply(r.Context(), r.FormValue("message"))
	switch {
	case errors.Is(err, persona.ErrEmptyMessage):
		s.renderPartial(w, "reply", replyData{Notice: &submission.Notice{
			Level: submission.LevelError, Title: "Please enter a message for Golden!",
		}})
	case err != nil:
		s.logFor(r).Error().Err(err).Msg("persona reply failed")
		s.renderPartial(w, "reply", replyData{Notice: &submission.Notice{
			Level: submission.LevelError, Title: "Failed to get response from Golden. Please try again.",
		}})
	default:
		s.renderPartial(w, "reply", replyData{Reply: reply, Notice: &submission.Notice{
			Level: submission.LevelSuccess, Title: "Golden responded! 🐱",
		}})
	}
}

// handleAIMeet fetches a random visitor profile and renders its card.
func (s *Server) handleAIMeet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.directory.FetchProfile(r.Context())
	s.renderPartial(w, "profile", profileData{Profile: p, Notice: &submission.Notice{
		Level: submission.LevelSuccess, Title: "Found a new cat lover! 🐾",
	}})
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// renderPartial executes a named template block (no layout).
func (s *Server) renderPartial(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering partial: %v", err), http.StatusInternalServerError)
	}
}
