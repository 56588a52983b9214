package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"creativeops/internal/catalog"
	"creativeops/internal/dco"
	"creativeops/internal/interfaces"
	"creativeops/internal/models"
	"creativeops/internal/summary"
)

type MetricsHandler struct {
	creatives interfaces.CreativeRepository
	variants  interfaces.VariantRepository
	metrics   interfaces.MetricsRepository
	rules     *dco.RuleSet
	catalog   *catalog.Catalog
	validator *validator.Validate
}

func NewMetricsHandler(creatives interfaces.CreativeRepository, variants interfaces.VariantRepository, metrics interfaces.MetricsRepository, rules *dco.RuleSet, c *catalog.Catalog) *MetricsHandler {
	return &MetricsHandler{
		creatives: creatives,
		variants:  variants,
		metrics:   metrics,
		rules:     rules,
		catalog:   c,
		validator: validator.New(),
	}
}

// IngestMetrics stores analytics numbers for a creative's variants.
// @Tags Metrics
// @Summary Ingest variant metrics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Creative ID"
// @Param metrics body models.IngestMetricsRequest true "Metrics"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/metrics [put]
func (h *MetricsHandler) IngestMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.IngestMetricsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}
	if _, err := h.creatives.GetByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.metrics.Upsert(r.Context(), id, req.Metrics); err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("Stored metrics for %d variants of creative %s", len(req.Metrics), id)
	writeJSON(w, http.StatusOK, map[string]any{"updated": len(req.Metrics)})
}

// GetSummary returns the creative's variants, previews, performance totals
// and the DCO rules its current numbers match.
// @Tags Metrics
// @Summary Creative summary
// @Security BearerAuth
// @Produce json
// @Param id path string true "Creative ID"
// @Param location query string false "Viewer location"
// @Param device_type query string false "Viewer device"
// @Param time_bucket query string false "Time of day bucket"
// @Success 200 {object} summary.Summary
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/summary [get]
func (h *MetricsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	creative, err := h.creatives.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	variants, err := h.variants.ListByCreative(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics, err := h.metrics.ListByCreative(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s := summary.Build(h.catalog, creative, variants, metrics, nil)

	q := r.URL.Query()
	ev := h.rules.EvaluateFor(id, dco.SignalSnapshot{
		Metrics:    s.Totals.Metrics(),
		Location:   q.Get("location"),
		DeviceType: q.Get("device_type"),
		TimeBucket: q.Get("time_bucket"),
	})
	s.Matches = append(s.Matches, ev.Matches...)

	writeJSON(w, http.StatusOK, s)
}
