package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/banshee-data/skylink/internal/astro"
	"github.com/banshee-data/skylink/internal/coordhelpers"
	"github.com/banshee-data/skylink/internal/db"
	"github.com/banshee-data/skylink/internal/httputil"
	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/plugin"
)

// HelperInfo describes a registered link helper.
type HelperInfo struct {
	Name     string   `json:"name"`
	Display  string   `json:"display"`
	Category string   `json:"category"`
	Arity    int      `json:"arity"`
	Inputs   []string `json:"inputs"`
	Outputs  []string `json:"outputs"`
}

func helperInfo(h plugin.LinkHelper) HelperInfo {
	in, out := h.Labels()
	return HelperInfo{
		Name:     h.Name(),
		Display:  h.Display(),
		Category: h.Category(),
		Arity:    h.Arity(),
		Inputs:   in,
		Outputs:  out,
	}
}

// LinkSpec asks a helper to link input components to output components by label.
type LinkSpec struct {
	Helper  string   `json:"helper"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// LinksResponse lists links in their "to <- using(from...)" form.
type LinksResponse struct {
	Links []string `json:"links"`
}

// ConvertRequest applies every function of a helper in one direction.
type ConvertRequest struct {
	Helper    string      `json:"helper"`
	Direction string      `json:"direction,omitempty"`
	Values    [][]float64 `json:"values"`
}

// ConvertResponse holds one output array per helper output (or input, backwards).
type ConvertResponse struct {
	Helper    string      `json:"helper"`
	Direction string      `json:"direction"`
	Values    [][]float64 `json:"values"`
}

// SessionRequest saves the links produced by one or more helpers.
type SessionRequest struct {
	Name  string     `json:"name"`
	Links []LinkSpec `json:"links"`
}

// SessionResponse is a stored session with its links rendered as strings.
type SessionResponse struct {
	*db.Session
	Links []string `json:"links,omitempty"`
}

func (s *Server) handleHelpers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	category := r.URL.Query().Get("category")
	helpers := make([]HelperInfo, 0)
	for _, h := range s.registry.Helpers() {
		if category != "" && h.Category() != category {
			continue
		}
		helpers = append(helpers, helperInfo(h))
	}
	httputil.WriteJSONOK(w, helpers)
}

func (s *Server) handlePlugins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, s.registry.Plugins())
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var spec LinkSpec
	if err := httputil.DecodeJSON(r, &spec); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	links, err := s.buildLinks([]LinkSpec{spec})
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, LinksResponse{Links: linkStrings(links)})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req ConvertRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	dir, err := plugin.ParseDirection(req.Direction)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	out, err := s.registry.Apply(req.Helper, dir, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, ConvertResponse{Helper: req.Helper, Direction: string(dir), Values: out})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sessions, err := s.sessions.ListSessions()
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("Failed to list sessions: %v", err))
			return
		}
		if sessions == nil {
			sessions = []*db.Session{}
		}
		httputil.WriteJSONOK(w, sessions)

	case http.MethodPost:
		var req SessionRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" || len(req.Links) == 0 {
			httputil.BadRequest(w, "name and at least one link are required")
			return
		}
		links, err := s.buildLinks(req.Links)
		if err != nil {
			writeError(w, err)
			return
		}
		session, err := s.sessions.SaveSession(req.Name, links)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("Failed to save session: %v", err))
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, SessionResponse{Session: session, Links: linkStrings(links)})

	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		httputil.NotFound(w, "session not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		session, err := s.sessions.GetSession(id)
		if err != nil {
			writeError(w, err)
			return
		}
		links, err := s.sessions.LoadLinks(id, s.registry)
		if err != nil {
			writeError(w, err)
			return
		}
		httputil.WriteJSONOK(w, SessionResponse{Session: session, Links: linkStrings(links)})

	case http.MethodDelete:
		if err := s.sessions.DeleteSession(id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// buildLinks creates links for each spec. Components are shared by label
// across specs so chained helpers connect.
func (s *Server) buildLinks(specs []LinkSpec) ([]*link.ComponentLink, error) {
	ids := make(map[string]*link.ComponentID)
	component := func(labels []string) []*link.ComponentID {
		out := make([]*link.ComponentID, len(labels))
		for i, label := range labels {
			if ids[label] == nil {
				ids[label] = link.NewComponentID(label)
			}
			out[i] = ids[label]
		}
		return out
	}

	var links []*link.ComponentLink
	for _, spec := range specs {
		h, err := s.registry.Helper(spec.Helper)
		if err != nil {
			return nil, err
		}
		ls, err := h.Links(component(spec.Inputs), component(spec.Outputs))
		if err != nil {
			return nil, err
		}
		links = append(links, ls...)
	}
	return links, nil
}

func linkStrings(links []*link.ComponentLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.String()
	}
	return out
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, plugin.ErrUnknownHelper), errors.Is(err, db.ErrSessionNotFound):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, plugin.ErrValueCount),
		errors.Is(err, coordhelpers.ErrIdentifierCount),
		errors.Is(err, link.ErrArity),
		errors.Is(err, link.ErrShapeMismatch),
		errors.Is(err, astro.ErrShapeMismatch):
		httputil.BadRequest(w, err.Error())
	default:
		httputil.InternalServerError(w, err.Error())
	}
}
