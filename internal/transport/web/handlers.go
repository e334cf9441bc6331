package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/pkg/conv"
	"github.com/sandevgo/quillbot/pkg/log"
)

type chatRequest struct {
	Message    string `json:"message"`
	UseContext bool   `json:"use_context"`
}

type contextRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type historyMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	HTML      string    `json:"html,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionKey reads the session cookie. With mint set, a missing cookie gets
// a fresh opaque key bound to the response.
func (s *Server) sessionKey(w http.ResponseWriter, r *http.Request, mint bool) (string, bool) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	if !mint {
		return "", false
	}
	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key, true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	key, _ := s.sessionKey(w, r, true)

	reply, histLen, err := s.svc.Chat(r.Context(), key, req.Message, req.UseContext)
	if err != nil {
		s.writeChatError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response":       reply,
		"history_length": histLen,
	})
}

// writeChatError maps the turn error kinds onto HTTP statuses. One failed
// turn is never fatal: the next request proceeds normally.
func (s *Server) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	log.FromCtx(r.Context()).Error().Err(err).Msg("chat request failed")

	var remoteErr *core.RemoteError
	switch {
	case errors.Is(err, core.ErrMissingCredential):
		writeError(w, http.StatusUnauthorized, "API key required")
	case errors.Is(err, core.ErrRemoteTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &remoteErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleAddContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	key, ok := s.sessionKey(w, r, false)
	if !ok {
		writeError(w, http.StatusBadRequest, "No active session")
		return
	}

	names, err := s.svc.AddContext(key, req.Name, req.Content)
	if err != nil {
		if errors.Is(err, core.ErrNoSession) {
			writeError(w, http.StatusBadRequest, "No active session")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"contexts": names,
	})
}

func (s *Server) handleListContexts(w http.ResponseWriter, r *http.Request) {
	key, ok := s.sessionKey(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"contexts": []string{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contexts": s.svc.ListContexts(key)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	key, ok := s.sessionKey(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"history": []historyMessage{}})
		return
	}

	messages := s.svc.History(key)
	history := make([]historyMessage, 0, len(messages))
	for _, m := range messages {
		hm := historyMessage{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp}
		if m.Role == core.RoleAssistant {
			hm.HTML = conv.MarkdownToWebHTML([]byte(m.Content))
		}
		history = append(history, hm)
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	key, ok := s.sessionKey(w, r, false)
	if !ok {
		writeError(w, http.StatusBadRequest, "No active session")
		return
	}
	if err := s.svc.ClearHistory(key); err != nil {
		writeError(w, http.StatusBadRequest, "No active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	key, _ := s.sessionKey(w, r, true)

	summary, err := s.svc.Summarize(r.Context(), key)
	if err != nil {
		s.writeChatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
