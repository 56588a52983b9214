package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/config"
	"creativeops/internal/dco"
	"creativeops/internal/interfaces"
	"creativeops/internal/matrix"
	"creativeops/internal/models"
	"creativeops/internal/preview"
	"creativeops/internal/summary"
)

// memStore backs the in-memory repositories used by handler tests.
type memStore struct {
	mu        sync.Mutex
	creatives map[string]*models.Creative
	variants  map[string][]models.Variant
	metrics   map[string]models.VariantMetrics
	blocked   map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		creatives: map[string]*models.Creative{},
		variants:  map[string][]models.Variant{},
		metrics:   map[string]models.VariantMetrics{},
		blocked:   map[string]int64{},
	}
}

func notFound(id string) error {
	return apperr.Wrap(apperr.CodeNotFound, sql.ErrNoRows, "creative %s not found", id)
}

type memCreatives struct{ *memStore }

func (m memCreatives) Create(ctx context.Context, c *models.Creative, variants []models.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.creatives[c.ID] = &cp
	m.variants[c.ID] = append([]models.Variant(nil), variants...)
	return nil
}

func (m memCreatives) GetByID(ctx context.Context, id string) (*models.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creatives[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *c
	return &cp, nil
}

func (m memCreatives) filtered(filter models.CreativeFilter) []*models.Creative {
	var out []*models.Creative
	for _, c := range m.creatives {
		if filter.Platform != "" {
			found := false
			for _, p := range c.SelectedPlatforms {
				found = found || p == filter.Platform
			}
			if !found {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m memCreatives) List(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(filter)
	if filter.Offset >= len(all) {
		return []*models.Creative{}, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (m memCreatives) Count(ctx context.Context, filter models.CreativeFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(filter)), nil
}

func (m memCreatives) CountVariations(ctx context.Context, ids []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, id := range ids {
		if n := len(matrix.Live(m.variants[id])); n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (m memCreatives) UpdatePlatforms(ctx context.Context, c *models.Creative, variants []models.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creatives[c.ID]; !ok {
		return notFound(c.ID)
	}
	cp := *c
	m.creatives[c.ID] = &cp

	// Existing rows only take the new retirement, matching the SQL upsert.
	stored := map[string]models.Variant{}
	for _, v := range m.variants[c.ID] {
		stored[v.ID] = v
	}
	next := make([]models.Variant, 0, len(variants))
	for _, v := range variants {
		if old, ok := stored[v.ID]; ok {
			old.Retired, old.RetiredAt = v.Retired, v.RetiredAt
			v = old
		}
		next = append(next, v)
	}
	m.variants[c.ID] = next
	return nil
}

func (m memCreatives) UpdateBaseImage(ctx context.Context, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creatives[id]
	if !ok {
		return notFound(id)
	}
	c.BaseImageRef = ref
	return nil
}

func (m memCreatives) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.blocked[id]; n > 0 {
		return &interfaces.DeletionBlockedError{Resource: "creative", References: map[string]int64{"dco_rules": n}}
	}
	if _, ok := m.creatives[id]; !ok {
		return notFound(id)
	}
	delete(m.creatives, id)
	delete(m.variants, id)
	return nil
}

type memVariants struct{ *memStore }

func (m memVariants) ListByCreative(ctx context.Context, creativeID string) ([]models.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Variant{}, m.variants[creativeID]...), nil
}

func (m memVariants) update(id string, fn func(v *models.Variant)) bool {
	for cid, vs := range m.variants {
		for i := range vs {
			if vs[i].ID == id {
				fn(&m.variants[cid][i])
				return true
			}
		}
	}
	return false
}

func (m memVariants) SaveRender(ctx context.Context, id string, status models.VariantStatus, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.update(id, func(v *models.Variant) { v.Status, v.ImageRef = status, ref }) {
		return apperr.New(apperr.CodeNotFound, "variant %s not found", id)
	}
	return nil
}

func (m memVariants) AddVariation(ctx context.Context, id string) (models.Variant, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		out models.Variant
		ok  bool
	)
	m.update(id, func(v *models.Variant) {
		if v.Retired || v.Variations.Count >= v.Variations.Cap {
			return
		}
		v.Variations.Count++
		v.DCOState = models.DCOStateProcessing
		out, ok = *v, true
	})
	return out, ok, nil
}

type memMetrics struct{ *memStore }

func (m memMetrics) Upsert(ctx context.Context, creativeID string, metrics []models.VariantMetrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := map[string]bool{}
	for _, v := range m.variants[creativeID] {
		owned[v.ID] = true
	}
	for _, x := range metrics {
		if !owned[x.VariantID] {
			return apperr.New(apperr.CodeNotFound, "variant %s not found for creative %s", x.VariantID, creativeID)
		}
	}
	for _, x := range metrics {
		m.metrics[x.VariantID] = x
	}
	return nil
}

func (m memMetrics) ListByCreative(ctx context.Context, creativeID string) (map[string]models.VariantMetrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.VariantMetrics{}
	for _, v := range m.variants[creativeID] {
		if x, ok := m.metrics[v.ID]; ok {
			out[v.ID] = x
		}
	}
	return out, nil
}

type fakeRenderer struct {
	mu    sync.Mutex
	calls []string
	url   string
	err   error
}

func (f *fakeRenderer) RequestRender(ctx context.Context, platform catalog.PlatformID, size string) (preview.RenderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(platform)+"/"+size)
	if f.err != nil {
		return preview.RenderResult{Failed: true, Reason: apperr.MessageOf(f.err)}, f.err
	}
	return preview.RenderResult{ImageURL: f.url}, nil
}

// testAPI wires every handler onto a chi router the way the routes package
// does, without authentication.
type testAPI struct {
	store    *memStore
	rules    *dco.RuleSet
	renderer *fakeRenderer
	creative *CreativeHandler
	router   chi.Router
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := newMemStore()
	cat := catalog.Default()
	gen := matrix.NewGenerator(cat)
	rules, err := dco.NewRuleSet(nil)
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	renderer := &fakeRenderer{url: "https://cdn.example/render.png"}

	creatives, variants, metrics := memCreatives{store}, memVariants{store}, memMetrics{store}
	ch := NewCreativeHandler(creatives, variants, gen, &config.S3Config{})
	vh := NewVariantHandler(creatives, variants, cat, renderer)
	rh := NewRuleHandler(rules, creatives, variants, gen)
	mh := NewMetricsHandler(creatives, variants, metrics, rules, cat)
	ph := NewPlatformHandler(cat)

	r := chi.NewRouter()
	r.Get("/platforms", ph.ListPlatforms)
	r.Route("/creatives", func(r chi.Router) {
		r.Get("/", ch.ListCreatives)
		r.Post("/", ch.CreateCreative)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ch.GetCreative)
			r.Delete("/", ch.DeleteCreative)
			r.Put("/platforms", ch.UpdatePlatforms)
			r.Post("/image", ch.UploadBaseImage)
			r.Get("/variants", vh.ListVariants)
			r.Get("/preview/{platform}", vh.GetPreview)
			r.Post("/render", vh.RenderVariant)
			r.Post("/images", vh.ImportImages)
			r.Put("/metrics", mh.IngestMetrics)
			r.Get("/summary", mh.GetSummary)
		})
	})
	r.Route("/dco", func(r chi.Router) {
		r.Get("/rules", rh.ListRules)
		r.Post("/rules", rh.CreateRule)
		r.Delete("/rules/{id}", rh.DeleteRule)
		r.Post("/rules/{id}/reorder", rh.ReorderRule)
		r.Post("/rules/{id}/toggle", rh.ToggleRule)
		r.Post("/evaluate", rh.Evaluate)
	})

	return &testAPI{store: store, rules: rules, renderer: renderer, creative: ch, router: r}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d got %d (%s)", want, w.Code, w.Body.String())
	}
}

type createdCreative struct {
	ID              string           `json:"id"`
	Variants        []models.Variant `json:"variants"`
	TotalVariations int              `json:"total_variations"`
}

func (a *testAPI) createCreative(t *testing.T, title string, platforms ...string) createdCreative {
	t.Helper()
	w := a.do(t, http.MethodPost, "/creatives", map[string]any{
		"title":              title,
		"description":        "Seasonal push",
		"campaign":           "Q3",
		"format_type":        "Display",
		"tags":               []string{" sale ", "sale", ""},
		"selected_platforms": platforms,
	})
	expectStatus(t, w, http.StatusCreated)
	return decode[createdCreative](t, w)
}

// matchView is the wire form of a dco.Match, which only marshals.
type matchView struct {
	RuleID   string         `json:"rule_id"`
	RuleName string         `json:"rule_name"`
	Action   map[string]any `json:"action"`
}

type evaluateView struct {
	evaluateResponse
	Matches []matchView `json:"matches"`
}

type summaryView struct {
	summary.Summary
	Matches []matchView `json:"dco_matches"`
}
