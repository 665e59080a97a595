package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/app"
	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

const maxChatBody = 8 << 10

type Handlers struct{ R *app.ResolverService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply   string            `json:"reply"`
	Outcome string            `json:"outcome"`
	Intent  string            `json:"intent"`
	Place   *catalog.PlaceDoc `json:"place"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/chat", h.chat)
	s.mux.Get("/v1/places", h.listPlaces)
	s.mux.Get("/v1/places/{id}", h.getPlace)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "encoding failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxChatBody))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON object with a message field")
		return
	}

	res, err := h.R.Resolve(r.Context(), req.Message)
	if errors.Is(err, domain.ErrInvalidInput) {
		writeProblem(w, http.StatusBadRequest, "Message is required", "message must be a non-empty string")
		return
	}
	if err != nil {
		// Resolve converts synthesis failures itself; anything else is a bug.
		log.Error().Err(err).Msg("resolve failed")
		writeJSON(w, http.StatusOK, chatResponse{Reply: domain.ApologyText, Outcome: string(domain.OutcomeFailed), Intent: domain.IntentGeneral.String()})
		return
	}
	observability.ObserveResolution(h.R.Strategy(), string(res.Outcome), res.Intent.String())

	out := chatResponse{Reply: res.Answer, Outcome: string(res.Outcome), Intent: res.Intent.String()}
	if res.Place != nil {
		doc := catalog.ToDoc(*res.Place)
		out.Place = &doc
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	docs := catalog.ToDocs(h.R.Catalog())
	if q := strings.TrimSpace(r.URL.Query().Get("category")); q != "" {
		filtered := docs[:0]
		for _, d := range docs {
			for _, c := range d.Categories {
				if strings.EqualFold(c, q) {
					filtered = append(filtered, d)
					break
				}
			}
		}
		docs = filtered
	}
	writeCached(w, r, struct {
		Items []catalog.PlaceDoc `json:"items"`
	}{Items: docs})
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	p, ok := h.R.Catalog().Get(id)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "place not found")
		return
	}
	writeCached(w, r, catalog.ToDoc(p))
}
