// Package server exposes the reference store and lookup clients over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bunken-app/bunken/citation"
	"github.com/bunken-app/bunken/lookup"
	"github.com/bunken-app/bunken/lookup/cinii"
	"github.com/bunken-app/bunken/lookup/ndl"
	"github.com/bunken-app/bunken/reference"
	"github.com/bunken-app/bunken/store"
)

type Server struct {
	db    *store.DB
	ndl   *ndl.Client
	cinii *cinii.Client
	rr    *Responder
	log   *slog.Logger

	ndlProfile   *lookup.Profile
	ciniiProfile *lookup.Profile
}

func New(db *store.DB, ndlClient *ndl.Client, ciniiClient *cinii.Client, log *slog.Logger) (*Server, error) {
	ndlProfile, err := lookup.LoadProfile("ndl")
	if err != nil {
		return nil, err
	}
	ciniiProfile, err := lookup.LoadProfile("cinii")
	if err != nil {
		return nil, err
	}
	return &Server{
		db:           db,
		ndl:          ndlClient,
		cinii:        ciniiClient,
		rr:           NewResponder(log),
		log:          log,
		ndlProfile:   ndlProfile,
		ciniiProfile: ciniiProfile,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/references", func(r chi.Router) {
		r.Get("/", s.listReferences)
		r.Post("/", s.createReference)
		r.Get("/{id}", s.getReference)
		r.Put("/{id}", s.updateReference)
		r.Delete("/{id}", s.deleteReference)
		r.Get("/{id}/citation", s.citeReference)
	})
	r.Get("/bibliography", s.bibliography)
	r.Get("/export", s.exportJSON)
	r.Post("/import", s.importJSON)
	r.Get("/lookup/isbn", s.lookupISBN)
	r.Get("/lookup/articles", s.lookupArticles)
	return r
}

// sortedSuffixed is the list every read endpoint works from: migrated,
// disambiguated and in bibliography order.
func (s *Server) sortedSuffixed() ([]reference.Reference, error) {
	refs, err := s.db.List()
	if err != nil {
		return nil, err
	}
	return reference.Sorted(reference.AddYearSuffixes(refs)), nil
}

func (s *Server) listReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := s.sortedSuffixed()
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not list references", err)
		return
	}
	s.rr.JSON(w, http.StatusOK, refs)
}

func (s *Server) getReference(w http.ResponseWriter, r *http.Request) {
	ref, err := s.db.Get(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.rr.Error(w, http.StatusNotFound, "reference not found", err)
		return
	}
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not load reference", err)
		return
	}
	s.rr.JSON(w, http.StatusOK, ref)
}

func (s *Server) createReference(w http.ResponseWriter, r *http.Request) {
	var ref reference.Reference
	if err := decodeJSON(r, &ref); err != nil {
		s.rr.Error(w, http.StatusBadRequest, "invalid reference payload", err)
		return
	}
	if !ref.Type.Valid() {
		s.rr.Error(w, http.StatusBadRequest, "unknown literature type", errors.New(string(ref.Type)))
		return
	}
	ref = reference.Migrate(ref)

	existing, err := s.db.List()
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not check duplicates", err)
		return
	}
	if reference.IsDuplicate(existing, ref) {
		s.rr.Error(w, http.StatusConflict, "reference already exists", nil)
		return
	}

	now := time.Now().Format(time.RFC3339)
	ref.ID = uuid.NewString()
	ref.CreatedAt = now
	ref.UpdatedAt = now
	if err := s.db.Put(ref); err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not store reference", err)
		return
	}
	s.rr.JSON(w, http.StatusCreated, ref)
}

func (s *Server) updateReference(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.Get(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.rr.Error(w, http.StatusNotFound, "reference not found", err)
			return
		}
		s.rr.Error(w, http.StatusInternalServerError, "could not load reference", err)
		return
	}

	var ref reference.Reference
	if err := decodeJSON(r, &ref); err != nil {
		s.rr.Error(w, http.StatusBadRequest, "invalid reference payload", err)
		return
	}
	if !ref.Type.Valid() {
		s.rr.Error(w, http.StatusBadRequest, "unknown literature type", errors.New(string(ref.Type)))
		return
	}
	ref = reference.Migrate(ref)
	ref.ID = id
	ref.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := s.db.Put(ref); err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not store reference", err)
		return
	}
	s.rr.JSON(w, http.StatusOK, ref)
}

func (s *Server) deleteReference(w http.ResponseWriter, r *http.Request) {
	err := s.db.Delete(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.rr.Error(w, http.StatusNotFound, "reference not found", err)
		return
	}
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not delete reference", err)
		return
	}
	s.rr.JSON(w, http.StatusNoContent, nil)
}

func (s *Server) citeReference(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	refs, err := s.sortedSuffixed()
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not load references", err)
		return
	}
	for _, ref := range refs {
		if ref.ID != id {
			continue
		}
		s.rr.JSON(w, http.StatusOK, map[string]string{
			"citation": citation.FormatCitation(ref, r.URL.Query().Get("page")),
		})
		return
	}
	s.rr.Error(w, http.StatusNotFound, "reference not found", store.ErrNotFound)
}

func (s *Server) bibliography(w http.ResponseWriter, r *http.Request) {
	refs, err := s.sortedSuffixed()
	if err != nil {
		s.rr.Error(w, http.StatusInternalServerError, "could not load references", err)
		return
	}
	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		lines = append(lines, citation.FormatReference(ref))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strings.Join(lines, "\n") + "\n"))
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="references.json"`)
	if err := s.db.ExportJSON(w); err != nil {
		s.log.Error("exporting references", "error", err)
	}
}

func (s *Server) importJSON(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.ImportJSON(r.Body)
	if err != nil {
		s.rr.Error(w, http.StatusBadRequest, "could not import references", err)
		return
	}
	s.rr.JSON(w, http.StatusOK, stats)
}

func (s *Server) lookupISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.URL.Query().Get("isbn")
	if isbn == "" {
		s.rr.Error(w, http.StatusBadRequest, "missing isbn parameter", nil)
		return
	}
	payload, err := s.ndl.LookupISBN(r.Context(), isbn)
	if errors.Is(err, ndl.ErrNotFound) {
		s.rr.Error(w, http.StatusNotFound, "no record found for isbn", err)
		return
	}
	if err != nil {
		s.rr.Error(w, http.StatusBadGateway, "isbn lookup failed", err)
		return
	}
	draft := s.ndlProfile.Apply(payload)
	if t := reference.Type(r.URL.Query().Get("type")); t != "" && t.Valid() {
		s.rr.JSON(w, http.StatusOK, draft.Reference(t))
		return
	}
	s.rr.JSON(w, http.StatusOK, draft)
}

func (s *Server) lookupArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.rr.Error(w, http.StatusBadRequest, "missing q parameter", nil)
		return
	}
	payloads, err := s.cinii.SearchTitle(r.Context(), q)
	if err != nil {
		s.rr.Error(w, http.StatusBadGateway, "article search failed", err)
		return
	}
	drafts := make([]*lookup.Draft, 0, len(payloads))
	for _, p := range payloads {
		drafts = append(drafts, s.ciniiProfile.Apply(p))
	}
	s.rr.JSON(w, http.StatusOK, drafts)
}
