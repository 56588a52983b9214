// Package summary assembles the display view of a creative: its live
// variants, per-platform previews, DCO matches and the performance totals
// supplied by the analytics feed. Nothing here invents numbers; variants
// without metrics are reported as such.
package summary

import (
	"creativeops/internal/catalog"
	"creativeops/internal/dco"
	"creativeops/internal/matrix"
	"creativeops/internal/models"
	"creativeops/internal/preview"
)

type Health string

const (
	HealthExcellent Health = "excellent"
	HealthGood      Health = "good"
	HealthAverage   Health = "average"
	HealthPoor      Health = "poor"
	HealthUnknown   Health = "unknown"
)

// HealthForROAS buckets a return on ad spend.
func HealthForROAS(roas float64) Health {
	switch {
	case roas >= 2.5:
		return HealthExcellent
	case roas >= 1.5:
		return HealthGood
	case roas >= 1.0:
		return HealthAverage
	default:
		return HealthPoor
	}
}

type VariantRow struct {
	models.Variant
	Metrics *models.VariantMetrics `json:"metrics,omitempty"`
	CTR     *float64               `json:"ctr,omitempty"`
	ROAS    *float64               `json:"roas,omitempty"`
	Health  Health                 `json:"health"`
}

type PlatformSummary struct {
	Platform catalog.PlatformID `json:"platform"`
	Name     string             `json:"name"`
	Variants int                `json:"variants"`
	Ready    int                `json:"ready"`
	Preview  string             `json:"preview,omitempty"`
	// PreviewAvailable is false when no ready image exists yet; the display
	// layer shows a "not available" placeholder in that case.
	PreviewAvailable bool `json:"preview_available"`
}

type Totals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	CTR         float64 `json:"ctr"`
	ROAS        float64 `json:"roas"`
	Health      Health  `json:"health"`
	Reporting   int     `json:"reporting_variants"`
}

// Metrics exposes the totals as DCO signal metrics. It is nil when no variant
// reported, so metric conditions stay unmatched instead of seeing zeros.
func (t Totals) Metrics() map[string]float64 {
	if t.Reporting == 0 {
		return nil
	}
	return map[string]float64{
		"ctr":         t.CTR,
		"roas":        t.ROAS,
		"impressions": float64(t.Impressions),
		"clicks":      float64(t.Clicks),
		"spend":       t.Spend,
		"revenue":     t.Revenue,
	}
}

type Summary struct {
	CreativeID      string            `json:"creative_id"`
	Title           string            `json:"title"`
	TotalVariations int               `json:"total_variations"`
	Platforms       []PlatformSummary `json:"platforms"`
	Rows            []VariantRow      `json:"variants"`
	Totals          Totals            `json:"totals"`
	Matches         []dco.Match       `json:"dco_matches"`
}

// Build combines the pieces. metrics is keyed by variant id; ev may be nil.
func Build(cat *catalog.Catalog, c *models.Creative, variants []models.Variant, metrics map[string]models.VariantMetrics, ev *dco.Evaluation) Summary {
	live := matrix.Live(variants)
	s := Summary{
		CreativeID:      c.ID,
		Title:           c.Title,
		TotalVariations: len(live),
		Platforms:       []PlatformSummary{},
		Rows:            make([]VariantRow, 0, len(live)),
		Matches:         []dco.Match{},
	}

	for _, v := range live {
		row := VariantRow{Variant: v, Health: HealthUnknown}
		if m, ok := metrics[v.ID]; ok {
			m := m
			ctr, roas := m.CTR(), m.ROAS()
			row.Metrics, row.CTR, row.ROAS = &m, &ctr, &roas
			row.Health = HealthForROAS(roas)

			s.Totals.Impressions += m.Impressions
			s.Totals.Clicks += m.Clicks
			s.Totals.Spend += m.Spend
			s.Totals.Revenue += m.Revenue
			s.Totals.Reporting++
		}
		s.Rows = append(s.Rows, row)
	}

	s.Totals.Health = HealthUnknown
	if s.Totals.Reporting > 0 {
		s.Totals.CTR = models.VariantMetrics{Impressions: s.Totals.Impressions, Clicks: s.Totals.Clicks}.CTR()
		s.Totals.ROAS = models.VariantMetrics{Spend: s.Totals.Spend, Revenue: s.Totals.Revenue}.ROAS()
		s.Totals.Health = HealthForROAS(s.Totals.ROAS)
	}

	for _, p := range cat.List() {
		ps := PlatformSummary{Platform: p.ID, Name: p.Name}
		for _, v := range live {
			if v.Platform != p.ID {
				continue
			}
			ps.Variants++
			if v.Status == models.VariantStatusReady {
				ps.Ready++
			}
		}
		if ps.Variants == 0 {
			continue
		}
		ps.Preview, ps.PreviewAvailable = preview.Resolve(p, preview.FromVariants(live, p.ID))
		s.Platforms = append(s.Platforms, ps)
	}

	if ev != nil {
		s.Matches = append(s.Matches, ev.Matches...)
	}
	return s
}
