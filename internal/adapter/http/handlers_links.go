package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"linkboard/internal/app"

	"github.com/julienschmidt/httprouter"
)

type linkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.links.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := parseJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	link, err := s.links.Create(r.Context(), req.Title, req.URL, req.Icon)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		http.Error(w, "invalid link id", http.StatusBadRequest)
		return
	}

	var req linkRequest
	if err := parseJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	link, err := s.links.Update(r.Context(), id, req.Title, req.URL, req.Icon)
	if errors.Is(err, app.ErrLinkNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		http.Error(w, "invalid link id", http.StatusBadRequest)
		return
	}

	err = s.links.Delete(r.Context(), id)
	if errors.Is(err, app.ErrLinkNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReorderLinks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := parseJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := s.links.Reorder(r.Context(), req.IDs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func linkID(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return strconv.ParseInt(params.ByName("id"), 10, 64)
}
