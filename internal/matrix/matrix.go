// Package matrix expands a creative's platform selection into the full set of
// size/placement variants and keeps that set in step with later selection
// changes.
package matrix

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/models"
)

// variantNamespace seeds the name-based UUIDs of variants so that the same
// key always yields the same identifier.
var variantNamespace = uuid.MustParse("6f1c1d3e-8a53-4d8c-9a0e-2c5b7a9d4e11")

// VariantID returns the stable identifier for a variant key.
func VariantID(key models.VariantKey) string {
	return uuid.NewSHA1(variantNamespace, []byte(key.String())).String()
}

type Generator struct {
	catalog      *catalog.Catalog
	variationCap int
}

type Option func(*Generator)

// WithVariationCap overrides models.DefaultVariationCap.
func WithVariationCap(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.variationCap = n
		}
	}
}

func NewGenerator(c *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{catalog: c, variationCap: models.DefaultVariationCap}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Catalog() *catalog.Catalog { return g.catalog }

// Generate returns one pending variant per (selected platform, size), ordered
// by catalog position and then by the platform's size order. The caller's
// ordering of SelectedPlatforms has no effect.
func (g *Generator) Generate(c *models.Creative) ([]models.Variant, error) {
	selected, err := g.selection(c)
	if err != nil {
		return nil, err
	}

	var out []models.Variant
	seen := make(map[models.VariantKey]struct{})
	for _, p := range g.catalog.List() {
		if _, ok := selected[p.ID]; !ok {
			continue
		}
		for _, size := range p.Sizes {
			v := g.newVariant(c.ID, size)
			if _, dup := seen[v.Key()]; dup {
				continue
			}
			seen[v.Key()] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

func (g *Generator) selection(c *models.Creative) (map[catalog.PlatformID]struct{}, error) {
	if c == nil {
		return nil, apperr.New(apperr.CodeInvalidInput, "creative is required")
	}
	if strings.TrimSpace(c.ID) == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "creative id is required")
	}
	if len(c.SelectedPlatforms) == 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "creative %s has no selected platforms", c.ID)
	}
	selected := make(map[catalog.PlatformID]struct{}, len(c.SelectedPlatforms))
	for _, id := range c.SelectedPlatforms {
		if _, err := g.catalog.Lookup(id); err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "creative %s selects an unsupported platform", c.ID)
		}
		selected[id] = struct{}{}
	}
	return selected, nil
}

func (g *Generator) newVariant(creativeID string, size catalog.SizeSpec) models.Variant {
	v := models.Variant{
		CreativeID:  creativeID,
		Platform:    size.Platform,
		Size:        size.Key(),
		Width:       size.Width,
		Height:      size.Height,
		Placement:   size.Placement,
		AspectClass: size.Aspect(),
		RatioLabel:  size.RatioLabel(),
		Status:      models.VariantStatusPending,
		DCOState:    models.DCOStateInactive,
		Variations:  models.Variations{Count: 0, Cap: g.variationCap},
	}
	v.ID = VariantID(v.Key())
	return v
}

// Reconciliation is the outcome of comparing a creative's current selection
// with its previously generated variants.
type Reconciliation struct {
	Added    []models.Variant `json:"added"`
	Retained []models.Variant `json:"retained"`
	Retired  []models.Variant `json:"retired"`

	live []models.Variant
	// history holds variants retired by an earlier reconcile that stay retired.
	history []models.Variant
}

// All returns every variant the creative now owns: live ones in matrix order,
// then the ones retired by this call, then older retired ones.
func (r Reconciliation) All() []models.Variant {
	out := make([]models.Variant, 0, len(r.live)+len(r.Retired)+len(r.history))
	out = append(out, r.live...)
	out = append(out, r.Retired...)
	return append(out, r.history...)
}

// Reconcile diffs previous against the matrix the creative now requires.
//
// Previously retired variants that become required again are reactivated with
// their identifier and history intact and reported as added. Live variants no
// longer required are flagged retired at now and reported as retired. Variants
// that were already retired keep their original RetiredAt and are only
// carried through All.
func (g *Generator) Reconcile(c *models.Creative, previous []models.Variant, now time.Time) (Reconciliation, error) {
	desired, err := g.Generate(c)
	if err != nil {
		return Reconciliation{}, err
	}

	prev := make(map[models.VariantKey]models.Variant, len(previous))
	for _, p := range previous {
		if p.CreativeID != c.ID {
			return Reconciliation{}, apperr.New(apperr.CodeInvalidInput, "variant %s belongs to creative %s, not %s", p.ID, p.CreativeID, c.ID)
		}
		prev[p.Key()] = p
	}

	var rec Reconciliation
	wanted := make(map[models.VariantKey]struct{}, len(desired))
	for _, d := range desired {
		wanted[d.Key()] = struct{}{}
		p, ok := prev[d.Key()]
		switch {
		case !ok:
			p = d
			rec.Added = append(rec.Added, p)
		case p.Retired:
			p.Retired = false
			p.RetiredAt = nil
			rec.Added = append(rec.Added, p)
		default:
			rec.Retained = append(rec.Retained, p)
		}
		rec.live = append(rec.live, p)
	}

	for _, p := range previous {
		if _, ok := wanted[p.Key()]; ok {
			continue
		}
		if p.Retired {
			rec.history = append(rec.history, p)
			continue
		}
		at := now.UTC()
		p.Retired = true
		p.RetiredAt = &at
		rec.Retired = append(rec.Retired, p)
	}
	return rec, nil
}

// AddVariation records one more DCO-generated alternative on v and moves it to
// the processing state. It fails once the cap is reached or when v is retired.
func (g *Generator) AddVariation(v *models.Variant) error {
	if v.Retired {
		return apperr.New(apperr.CodeInvalidInput, "variant %s is retired", v.ID)
	}
	if v.Variations.Cap <= 0 {
		v.Variations.Cap = g.variationCap
	}
	if v.Variations.Full() {
		return apperr.New(apperr.CodeInvalidInput, "variant %s already has %s variations", v.ID, v.Variations)
	}
	v.Variations.Count++
	v.DCOState = models.DCOStateProcessing
	return nil
}

// Live filters out retired variants.
func Live(variants []models.Variant) []models.Variant {
	out := make([]models.Variant, 0, len(variants))
	for _, v := range variants {
		if !v.Retired {
			out = append(out, v)
		}
	}
	return out
}
