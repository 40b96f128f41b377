package claim

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/restoreco/claimscope/pkg/adapters"
	"github.com/restoreco/claimscope/pkg/models/api"
	"github.com/restoreco/claimscope/pkg/models/domain"
	"github.com/restoreco/claimscope/pkg/services/delivery"
	"github.com/restoreco/claimscope/pkg/services/export"
	"github.com/restoreco/claimscope/pkg/services/extraction"
	"github.com/restoreco/claimscope/pkg/services/scope"
	"github.com/restoreco/claimscope/pkg/services/session"
)

const attachmentLabel = "scope-summary"

// Extractor runs the extraction pipeline over pasted or OCR'd text.
type Extractor interface {
	Extract(ctx context.Context, documentText string) (domain.ClaimRecord, error)
}

// Store is the session-scoped record store.
type Store interface {
	Put(record domain.ClaimRecord)
	Get(claimID string) (domain.ClaimRecord, error)
	Replace(claimID string, update func(domain.ClaimRecord) (domain.ClaimRecord, error)) (domain.ClaimRecord, error)
	Delete(claimID string)
}

// SummaryBuilder renders the summary artifact for a finalized claim.
type SummaryBuilder interface {
	BuildSummary(report domain.Report) ([]byte, error)
}

// Deliverer uploads the artifact to the CRM attachment endpoint.
type Deliverer interface {
	Upload(ctx context.Context, att delivery.Attachment) (int, error)
}

type Handler struct {
	extractor Extractor
	store     Store
	builder   SummaryBuilder
	deliverer Deliverer
	now       func() time.Time
}

func NewHandler(extractor Extractor, store Store, builder SummaryBuilder, deliverer Deliverer) *Handler {
	return &Handler{
		extractor: extractor,
		store:     store,
		builder:   builder,
		deliverer: deliverer,
		now:       time.Now,
	}
}

// Extract handles the upload stage: document text in, a stored draft
// record with its first totals out.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "document text is empty"})
		return
	}

	record, err := h.extractor.Extract(ctx, req.Text)
	if err != nil {
		respondExtractionError(w, r, err)
		return
	}

	h.store.Put(record)
	respondJSON(w, r, http.StatusCreated, claimResponse(record))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.Get(chi.URLParam(r, "claimID"))
	if err != nil {
		respondNoRecord(w, r)
		return
	}
	respondJSON(w, r, http.StatusOK, claimResponse(record))
}

func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.Get(chi.URLParam(r, "claimID"))
	if err != nil {
		respondNoRecord(w, r)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapTotalsDomainToApi(scope.Compute(record)))
}

func (h *Handler) ToggleLineItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		return scope.ToggleLineItem(record, itemID)
	})
}

func (h *Handler) ToggleTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "tradeID")
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		return scope.ToggleTrade(record, tradeID)
	})
}

func (h *Handler) SetDeductible(w http.ResponseWriter, r *http.Request) {
	var req api.DeductibleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "invalid request body"})
		return
	}
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		return scope.SetDeductible(record, req.Deductible)
	})
}

func (h *Handler) SetNotes(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	var req api.NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "invalid request body"})
		return
	}
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		return scope.SetLineItemNotes(record, itemID, req.Notes)
	})
}

func (h *Handler) AddSupplement(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "tradeID")
	var req api.AddSupplementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, r, http.StatusBadRequest, api.Error{Kind: "bad_request", Message: "supplement title is empty"})
		return
	}
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		updated, _, err := scope.AddSupplement(record, tradeID, req.Title, req.Quantity, req.Amount)
		return updated, err
	})
}

func (h *Handler) RemoveSupplement(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "tradeID")
	supplementID := chi.URLParam(r, "supplementID")
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		return scope.RemoveSupplement(record, tradeID, supplementID)
	})
}

func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.replace(w, r, func(record domain.ClaimRecord) (domain.ClaimRecord, error) {
		if record.Finalized {
			return domain.ClaimRecord{}, scope.ErrFinalized
		}
		return scope.Finalize(record), nil
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.Get(chi.URLParam(r, "claimID"))
	if err != nil {
		respondNoRecord(w, r)
		return
	}
	if !record.Finalized {
		respondError(w, r, http.StatusConflict, api.Error{Kind: "not_finalized", Message: "claim has not been finalized"})
		return
	}
	totals := scope.Compute(record)
	respondJSON(w, r, http.StatusOK, api.SummaryResponse{
		Claim:      adapters.MapClaimRecordDomainToApi(record),
		Totals:     adapters.MapTotalsDomainToApi(totals),
		Exclusions: record.Exclusions,
	})
}

// Export renders the summary artifact and hands it to the CRM. The
// record is never mutated here; a failed delivery is reported inline
// and can simply be re-triggered.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	record, err := h.store.Get(chi.URLParam(r, "claimID"))
	if err != nil {
		respondNoRecord(w, r)
		return
	}
	if !record.Finalized {
		respondError(w, r, http.StatusConflict, api.Error{Kind: "not_finalized", Message: "claim has not been finalized"})
		return
	}

	report := scope.BuildReport(record, scope.Compute(record))
	artifact, err := h.builder.BuildSummary(report)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build summary artifact")
		respondError(w, r, http.StatusInternalServerError, api.Error{Kind: "export_failed", Message: "could not render summary document"})
		return
	}

	filename := export.Filename(record.ClaimNumber, h.now())
	status, err := h.deliverer.Upload(ctx, delivery.Attachment{
		RecordID:    record.ClaimNumber,
		Label:       attachmentLabel,
		Description: "Scope of work summary for claim " + record.ClaimNumber,
		Filename:    filename,
		Content:     artifact,
	})
	if err != nil {
		logger.Warn().Err(err).Int("status", status).Msg("attachment delivery failed")
		respondJSON(w, r, http.StatusOK, api.ExportResponse{
			Delivered:      false,
			Filename:       filename,
			UpstreamStatus: status,
			Message:        err.Error(),
		})
		return
	}

	respondJSON(w, r, http.StatusOK, api.ExportResponse{
		Delivered:      true,
		Filename:       filename,
		UpstreamStatus: status,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "claimID"))
	w.WriteHeader(http.StatusNoContent)
}

// replace applies one reviewer action through the store and returns
// the updated record with freshly computed totals.
func (h *Handler) replace(w http.ResponseWriter, r *http.Request, update func(domain.ClaimRecord) (domain.ClaimRecord, error)) {
	record, err := h.store.Replace(chi.URLParam(r, "claimID"), update)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoRecord):
			respondNoRecord(w, r)
		case errors.Is(err, scope.ErrFinalized):
			respondError(w, r, http.StatusConflict, api.Error{Kind: "finalized", Message: "claim record is finalized"})
		case errors.Is(err, scope.ErrNotFound):
			respondError(w, r, http.StatusNotFound, api.Error{Kind: "not_found", Message: err.Error()})
		default:
			respondError(w, r, http.StatusInternalServerError, api.Error{Kind: "internal", Message: err.Error()})
		}
		return
	}
	respondJSON(w, r, http.StatusOK, claimResponse(record))
}

func claimResponse(record domain.ClaimRecord) api.ClaimResponse {
	return api.ClaimResponse{
		Claim:  adapters.MapClaimRecordDomainToApi(record),
		Totals: adapters.MapTotalsDomainToApi(scope.Compute(record)),
	}
}

func respondExtractionError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		upstream  *extraction.UpstreamError
		malformed *extraction.MalformedError
		shape     *extraction.ShapeError
	)
	switch {
	case errors.As(err, &upstream):
		respondError(w, r, http.StatusServiceUnavailable, api.Error{
			Kind:      "upstream_unavailable",
			Message:   "the document service is temporarily unavailable, please retry",
			Retryable: true,
		})
	case errors.As(err, &malformed):
		respondError(w, r, http.StatusUnprocessableEntity, api.Error{
			Kind:    "malformed_extraction",
			Message: "the document could not be parsed; try manual text entry",
			Preview: malformed.Preview,
		})
	case errors.As(err, &shape):
		respondError(w, r, http.StatusUnprocessableEntity, api.Error{
			Kind:    "invalid_shape",
			Message: "the document could not be parsed; try manual text entry",
		})
	default:
		respondError(w, r, http.StatusInternalServerError, api.Error{Kind: "internal", Message: err.Error()})
	}
}

// respondNoRecord is the record-boundary redirect: no dialog, just a
// pointer back to the entry stage.
func respondNoRecord(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, api.Error{
		Kind:     "no_record",
		Message:  "no claim record for this session",
		Redirect: "/upload",
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	logger := zerolog.Ctx(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr api.Error) {
	respondJSON(w, r, status, apiErr)
}
