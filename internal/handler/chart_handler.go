package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/dto"
	"github.com/org-chart-api/internal/middleware"
	"github.com/org-chart-api/internal/service"
	"github.com/org-chart-api/internal/tree"
	"golang.org/x/text/language"
)

type ChartHandler struct {
	chartService service.ChartService
	validator    *validator.Validate
	logger       *slog.Logger
}

func NewChartHandler(chartService service.ChartService, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		chartService: chartService,
		validator:    validator.New(),
		logger:       logger,
	}
}

func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	locale := localeFromRequest(r)

	query := h.parseChartQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Token" {
			h.respondError(w, http.StatusBadRequest, translate(locale, msgTokenRequired), "")
			return
		}
		h.respondError(w, http.StatusBadRequest, translate(locale, msgValidation), err.Error())
		return
	}

	chart, err := h.chartService.Chart(r.Context(), query.Token)
	if err != nil {
		h.handleServiceError(w, r, locale, err)
		return
	}

	if query.Format == dto.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := tree.WriteOutline(w, chart.Root, chart.Directory); err != nil {
			h.logger.Error("failed to write outline", slog.Any("error", err))
		}
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewChartResponse(
		chart.Company, chart.Root, chart.Directory, chart.Report,
		translate(locale, msgUnknownManager),
	))
}

func (h *ChartHandler) parseChartQuery(r *http.Request) dto.ChartQuery {
	query := dto.ChartQuery{
		Token:  strings.TrimSpace(r.URL.Query().Get("token")),
		Format: dto.FormatJSON,
	}

	if format := r.URL.Query().Get("format"); format != "" {
		query.Format = strings.ToLower(format)
	}

	return query
}

func (h *ChartHandler) handleServiceError(w http.ResponseWriter, r *http.Request, locale language.Tag, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenRequired):
		h.respondError(w, http.StatusBadRequest, translate(locale, msgTokenRequired), "")
	case errors.Is(err, domain.ErrTokenExpired):
		h.respondError(w, http.StatusUnauthorized, translate(locale, msgTokenExpired), domain.ErrTokenExpired.Error())
	case errors.Is(err, domain.ErrTokenInvalid):
		h.respondError(w, http.StatusUnauthorized, translate(locale, msgTokenInvalid), domain.ErrTokenInvalid.Error())
	case errors.Is(err, domain.ErrTokenMalformed):
		h.respondError(w, http.StatusUnauthorized, translate(locale, msgTokenMalformed), domain.ErrTokenMalformed.Error())
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrUpstreamPayload):
		h.logger.Warn("upstream failure",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("error", err),
		)
		h.respondError(w, http.StatusBadGateway, translate(locale, msgUpstream), "")
	default:
		h.logger.Error("internal error",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("error", err),
		)
		h.respondError(w, http.StatusInternalServerError, translate(locale, msgInternal), "")
	}
}

func (h *ChartHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *ChartHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
