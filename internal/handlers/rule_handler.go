package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"creativeops/internal/apperr"
	"creativeops/internal/dco"
	"creativeops/internal/interfaces"
	"creativeops/internal/matrix"
	"creativeops/internal/middleware"
	"creativeops/internal/models"
)

type RuleHandler struct {
	rules     *dco.RuleSet
	creatives interfaces.CreativeRepository
	variants  interfaces.VariantRepository
	generator *matrix.Generator
	validator *validator.Validate
}

func NewRuleHandler(rules *dco.RuleSet, creatives interfaces.CreativeRepository, variants interfaces.VariantRepository, generator *matrix.Generator) *RuleHandler {
	return &RuleHandler{
		rules:     rules,
		creatives: creatives,
		variants:  variants,
		generator: generator,
		validator: validator.New(),
	}
}

type ruleListResponse struct {
	Strategy dco.Strategy `json:"strategy"`
	Rules    []dco.Rule   `json:"rules"`
}

// ListRules returns the rules in evaluation order.
// @Tags DCO
// @Summary List rules
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ruleListResponse
// @Router /api/v1/dco/rules [get]
func (h *RuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ruleListResponse{Strategy: h.rules.Strategy(), Rules: h.rules.Rules()})
}

// CreateRule appends a rule. The id is generated when omitted and rules are
// enabled unless the body says otherwise.
// @Tags DCO
// @Summary Create rule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/dco/rules [post]
func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, r, apperr.Wrap(apperr.CodeInvalidInput, err, "failed to read body"))
		return
	}

	var rule dco.Rule
	if err := json.Unmarshal(body, &rule); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(rule.ID) == "" {
		rule.ID = uuid.New().String()
	}
	if !gjson.GetBytes(body, "enabled").Exists() {
		rule.Enabled = true
	}

	if err := h.rules.Add(r.Context(), rule); err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("Added DCO rule %s by %q: %s", rule.ID, middleware.UserID(r.Context()), rule.Label())
	writeJSON(w, http.StatusCreated, rule)
}

// DeleteRule removes a rule.
// @Tags DCO
// @Summary Delete rule
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dco/rules/{id} [delete]
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.rules.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("Removed DCO rule %s by %q", id, middleware.UserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

// ReorderRule moves a rule to a new position.
// @Tags DCO
// @Summary Reorder rule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param body body reorderRequest true "Target index"
// @Success 200 {object} ruleListResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dco/rules/{id}/reorder [post]
func (h *RuleHandler) ReorderRule(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}
	if err := h.rules.Reorder(r.Context(), chi.URLParam(r, "id"), *req.Index); err != nil {
		writeError(w, r, err)
		return
	}
	h.ListRules(w, r)
}

// ToggleRule flips a rule between enabled and disabled.
// @Tags DCO
// @Summary Toggle rule
// @Security BearerAuth
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dco/rules/{id}/toggle [post]
func (h *RuleHandler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	enabled, err := h.rules.Toggle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "enabled": enabled})
}

type evaluateRequest struct {
	CreativeID string             `json:"creative_id" validate:"omitempty,uuid"`
	Signals    dco.SignalSnapshot `json:"signals"`
	Strategy   string             `json:"strategy" validate:"omitempty,oneof=all_matches first_match"`
}

type variationResult struct {
	Updated []models.Variant `json:"updated"`
	Capped  []string         `json:"capped"`
}

type evaluateResponse struct {
	Strategy   dco.Strategy     `json:"strategy"`
	Matches    []dco.Match      `json:"matches"`
	Outcomes   []dco.Outcome    `json:"outcomes"`
	Variations *variationResult `json:"variations,omitempty"`
}

// Evaluate runs the rules against a signal snapshot. When scoped to a
// creative, a matched generate-variant action adds one variation to each of
// its live variants that still has room.
// @Tags DCO
// @Summary Evaluate rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body evaluateRequest true "Signals"
// @Success 200 {object} evaluateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/dco/evaluate [post]
func (h *RuleHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	strategy := h.rules.Strategy()
	if req.Strategy != "" {
		s, err := dco.ParseStrategy(req.Strategy)
		if err != nil {
			writeError(w, r, err)
			return
		}
		strategy = s
	}
	signals := normalizeSignals(req.Signals)

	if req.CreativeID == "" {
		ev := h.rules.Evaluate(signals, strategy)
		writeJSON(w, http.StatusOK, evaluateResponse{Strategy: strategy, Matches: ev.Matches, Outcomes: ev.Outcomes})
		return
	}

	if _, err := h.creatives.GetByID(r.Context(), req.CreativeID); err != nil {
		writeError(w, r, err)
		return
	}
	ev := h.rules.EvaluateForWith(req.CreativeID, signals, strategy)
	resp := evaluateResponse{Strategy: strategy, Matches: ev.Matches, Outcomes: ev.Outcomes}

	if requestsVariant(ev) {
		res, err := h.addVariations(r, req.CreativeID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Variations = res
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestsVariant(ev dco.Evaluation) bool {
	for _, a := range ev.Actions() {
		if a.Kind() == dco.KindGenerateVariant {
			return true
		}
	}
	return false
}

func (h *RuleHandler) addVariations(r *http.Request, creativeID string) (*variationResult, error) {
	variants, err := h.variants.ListByCreative(r.Context(), creativeID)
	if err != nil {
		return nil, err
	}
	res := &variationResult{Updated: []models.Variant{}, Capped: []string{}}
	for _, v := range matrix.Live(variants) {
		// Skip the write for variants already known to be full.
		next := v
		if err := h.generator.AddVariation(&next); err != nil {
			res.Capped = append(res.Capped, v.ID)
			continue
		}
		updated, ok, err := h.variants.AddVariation(r.Context(), v.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			res.Capped = append(res.Capped, v.ID)
			continue
		}
		res.Updated = append(res.Updated, updated)
	}
	return res, nil
}

func normalizeSignals(s dco.SignalSnapshot) dco.SignalSnapshot {
	if len(s.Metrics) == 0 {
		return s
	}
	metrics := make(map[string]float64, len(s.Metrics))
	for k, v := range s.Metrics {
		metrics[strings.ToLower(strings.TrimSpace(k))] = v
	}
	s.Metrics = metrics
	return s
}
