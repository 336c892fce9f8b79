package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/server/middleware"
	"github.com/de-tools/revenue-atlas/pkg/services/property"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	revenue    revenue.Service
	properties property.Directory
}

func NewHandler(revenueSvc revenue.Service, properties property.Directory) *Handler {
	return &Handler{
		revenue:    revenueSvc,
		properties: properties,
	}
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	tenantID, ok := middleware.TenantFromContext(ctx)
	if !ok {
		writeError(w, r, http.StatusForbidden, "Tenant context required")
		return
	}

	properties, err := h.properties.ListProperties(ctx, tenantID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list properties")
		writeError(w, r, statusFor(err), detailFor(err))
		return
	}

	response := api.PropertyList{Properties: make([]api.Property, 0, len(properties))}
	for _, p := range properties {
		response.Properties = append(response.Properties, adapters.MapPropertyDomainToApi(p))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// GetSummary serves the dashboard card for one property.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := h.summarize(w, r, r.URL.Query().Get("property_id"))
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapRevenueReportDomainToDashboard(*report))
}

// GetPropertyRevenue serves the full revenue report for one property.
func (h *Handler) GetPropertyRevenue(w http.ResponseWriter, r *http.Request) {
	report, ok := h.summarize(w, r, chi.URLParam(r, "propertyID"))
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapRevenueReportDomainToApi(*report))
}

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request, propertyID string) (*domain.RevenueReport, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if propertyID == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "property_id is required")
		return nil, false
	}

	month, err := optionalInt(r, "month")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	year, err := optionalInt(r, "year")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	if _, err := revenue.ValidatePeriod(month, year); err != nil {
		writeError(w, r, statusFor(err), detailFor(err))
		return nil, false
	}

	tenantID, ok := middleware.TenantFromContext(ctx)
	if !ok {
		writeError(w, r, http.StatusForbidden, "Tenant context required")
		return nil, false
	}

	scope := domain.PropertyScope{PropertyID: propertyID, TenantID: tenantID}
	exists, err := h.properties.PropertyExists(ctx, scope)
	if err != nil {
		logger.Error().Err(err).Str("property_id", propertyID).Msg("failed to look up property")
		writeError(w, r, statusFor(err), detailFor(err))
		return nil, false
	}
	if !exists {
		writeError(w, r, http.StatusNotFound, "Property not found for tenant")
		return nil, false
	}

	report, err := h.revenue.GetRevenueSummary(ctx, domain.SummaryRequest{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Month:      month,
		Year:       year,
	})
	if err != nil {
		logger.Error().Err(err).Str("property_id", propertyID).Msg("failed to compute revenue summary")
		writeError(w, r, statusFor(err), detailFor(err))
		return nil, false
	}
	return report, true
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidWindowArgs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTenantRequired):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func detailFor(err error) string {
	var windowErr *domain.WindowArgsError
	switch {
	case errors.As(err, &windowErr):
		return windowErr.Detail
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "Database unavailable"
	default:
		return "Internal server error"
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, api.Error{Detail: detail})
}
