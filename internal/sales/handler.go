package sales

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rosetrack/rosetrack/internal/platform/httpx"
)

// Handler serves the sales slice of the gateway API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Search: r.URL.Query().Get("q")}
	if start := r.URL.Query().Get("start"); start != "" {
		filter.Start = &start
	}
	if end := r.URL.Query().Get("end"); end != "" {
		filter.End = &end
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list sales failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Sale{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sales": items})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	result, err := h.service.Record(r.Context(), req)
	if err != nil {
		h.logger.Error("record sale failed", slog.Any("error", err), slog.String("client", req.ClientName))
		httpx.RespondError(w, err)
		return
	}
	if len(result.PendingEffects) > 0 {
		h.logger.Warn("sale recorded with pending effects",
			slog.String("sale_id", result.Sale.ID),
			slog.Any("pending", result.PendingEffects),
		)
	}
	httpx.JSON(w, http.StatusCreated, result)
}

func (h *Handler) RetryEffects(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req RetryEffectsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	pending, err := h.service.RetryEffects(r.Context(), id, req)
	if err != nil {
		h.logger.Error("retry sale effects failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	if pending == nil {
		pending = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"pending_effects": pending})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete sale failed", slog.Any("error", err), slog.String("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
