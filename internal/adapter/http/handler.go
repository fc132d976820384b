package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/service"
)

const (
	maxBodyBytes  = 64 << 10
	healthTimeout = 2 * time.Second
)

// DerivativeService is the slice of the orchestrator the API needs.
type DerivativeService interface {
	RequestGeneration(ctx context.Context, req service.GenerationRequest) (*domain.StatusSnapshot, error)
	GetStatus(ctx context.Context, sourceID string) (*domain.StatusSnapshot, error)
	ListReady(ctx context.Context, sourceID string) ([]domain.Derivative, error)
	Get(ctx context.Context, sourceID, sizeName string) (*domain.Derivative, error)
	DeleteAll(ctx context.Context, sourceID, ownerID string) error
	Counts(ctx context.Context) (map[domain.JobStatus]int, error)
}

// SourceEventHandler accepts upload service notifications pushed over HTTP.
type SourceEventHandler interface {
	HandleUploaded(ctx context.Context, payload []byte) error
	HandleDeleted(ctx context.Context, payload []byte) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	svc DerivativeService
	db  Pinger
	log zerolog.Logger
}

func NewHandlers(svc DerivativeService, db Pinger, log zerolog.Logger) *Handlers {
	return &Handlers{svc: svc, db: db, log: logger.Component(log, "api")}
}

type generationBody struct {
	Sizes         []string `json:"sizes"`
	Force         bool     `json:"force"`
	ContentType   string   `json:"contentType"`
	StoragePath   string   `json:"storagePath"`
	SourceVersion int64    `json:"sourceVersion"`
}

// RequestGeneration accepts an empty body, which asks for every configured
// size of an already known source.
func (h *Handlers) RequestGeneration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generationBody
		if err := decodeBody(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		snap, err := h.svc.RequestGeneration(r.Context(), service.GenerationRequest{
			SourceID:      chi.URLParam(r, "sourceId"),
			OwnerID:       OwnerFrom(r.Context()),
			Sizes:         body.Sizes,
			Force:         body.Force,
			SourceVersion: body.SourceVersion,
			ContentType:   body.ContentType,
			StoragePath:   body.StoragePath,
		})
		if err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusAccepted, snap)
	}
}

func (h *Handlers) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := h.svc.GetStatus(r.Context(), chi.URLParam(r, "sourceId"))
		if err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func (h *Handlers) ListReady() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.svc.ListReady(r.Context(), chi.URLParam(r, "sourceId"))
		if err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (h *Handlers) Derivative() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := h.svc.Get(r.Context(), chi.URLParam(r, "sourceId"), chi.URLParam(r, "size"))
		if err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func (h *Handlers) DeleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.DeleteAll(r.Context(), chi.URLParam(r, "sourceId"), OwnerFrom(r.Context())); err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.svc.Counts(r.Context())
		if err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		out := map[domain.JobStatus]int{
			domain.JobStatusPending:    0,
			domain.JobStatusProcessing: 0,
			domain.JobStatusReady:      0,
			domain.JobStatusFailed:     0,
		}
		for status, n := range counts {
			out[status] = n
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := h.db.Ping(ctx); err != nil {
				h.log.Warn().Err(err).Msg("health check: database unreachable")
				writeError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SourceEvent feeds a pushed upload service notification to handle.
func (h *Handlers) SourceEvent(handle func(context.Context, []byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_request", "payload too large")
			return
		}
		if err := handle(r.Context(), payload); err != nil {
			writeServiceError(w, h.log, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}
