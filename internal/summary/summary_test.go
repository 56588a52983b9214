package summary

import (
	"math"
	"testing"

	"creativeops/internal/catalog"
	"creativeops/internal/dco"
	"creativeops/internal/matrix"
	"creativeops/internal/models"
)

func TestHealthForROAS(t *testing.T) {
	cases := []struct {
		roas float64
		want Health
	}{
		{2.5, HealthExcellent},
		{1.5, HealthGood},
		{1.0, HealthAverage},
		{0.99, HealthPoor},
	}
	for _, tc := range cases {
		if got := HealthForROAS(tc.roas); got != tc.want {
			t.Fatalf("ROAS %v: expected %s, got %s", tc.roas, tc.want, got)
		}
	}
}

func fixture(t *testing.T) (*models.Creative, []models.Variant) {
	t.Helper()
	c := &models.Creative{ID: "cr-1", Title: "Summer", SelectedPlatforms: []catalog.PlatformID{catalog.Google, catalog.Snapchat}}
	variants, err := matrix.NewGenerator(catalog.Default()).Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return c, variants
}

func TestBuildWithoutMetricsDoesNotInventNumbers(t *testing.T) {
	c, variants := fixture(t)
	s := Build(catalog.Default(), c, variants, nil, nil)

	if s.TotalVariations != 7 || s.Totals.Health != HealthUnknown {
		t.Fatalf("unexpected totals %d %+v", s.TotalVariations, s.Totals)
	}
	if s.Totals.Impressions != 0 || s.Totals.Reporting != 0 {
		t.Fatalf("numbers invented without metrics: %+v", s.Totals)
	}
	for _, row := range s.Rows {
		if row.Metrics != nil || row.CTR != nil || row.Health != HealthUnknown {
			t.Fatalf("row without metrics reports values: %+v", row)
		}
	}
	if len(s.Platforms) != 2 || s.Platforms[0].PreviewAvailable {
		t.Fatalf("unexpected platforms %+v", s.Platforms)
	}
	if len(s.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(s.Matches))
	}
}

func TestBuildAggregatesSuppliedMetrics(t *testing.T) {
	c, variants := fixture(t)
	variants[1].Status = models.VariantStatusReady
	variants[1].ImageRef = "banner.png"
	variants[0].Status = models.VariantStatusReady
	variants[0].ImageRef = "square.png"
	variants[6].Retired = true

	metrics := map[string]models.VariantMetrics{
		variants[0].ID: {VariantID: variants[0].ID, Impressions: 1000, Clicks: 30, Spend: 100, Revenue: 300},
		variants[1].ID: {VariantID: variants[1].ID, Impressions: 3000, Clicks: 10, Spend: 100, Revenue: 50},
	}
	ev := &dco.Evaluation{Matches: []dco.Match{{Rule: dco.Rule{ID: "r1"}, Action: dco.OptimizeFor{Goal: "ctr"}}}}

	s := Build(catalog.Default(), c, variants, metrics, ev)

	if s.TotalVariations != 6 || s.Totals.Impressions != 4000 || s.Totals.Clicks != 40 || s.Totals.Reporting != 2 {
		t.Fatalf("unexpected totals %d %+v", s.TotalVariations, s.Totals)
	}
	if math.Abs(s.Totals.CTR-1.0) > 1e-9 || math.Abs(s.Totals.ROAS-1.75) > 1e-9 || s.Totals.Health != HealthGood {
		t.Fatalf("unexpected ratios %+v", s.Totals)
	}
	if s.Rows[0].Health != HealthExcellent || s.Rows[1].Health != HealthPoor {
		t.Fatalf("unexpected row health %s %s", s.Rows[0].Health, s.Rows[1].Health)
	}

	if len(s.Platforms) != 1 {
		t.Fatalf("expected only google, got %+v", s.Platforms)
	}
	if p := s.Platforms[0]; p.Platform != catalog.Google || p.Preview != "square.png" || p.Ready != 2 {
		t.Fatalf("unexpected google rollup %+v", p)
	}
	if len(s.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(s.Matches))
	}
}

func TestTotalsMetrics(t *testing.T) {
	if m := (Totals{}).Metrics(); m != nil {
		t.Fatalf("no reporting variants should give nil metrics, got %v", m)
	}

	m := Totals{Reporting: 1, CTR: 1.5, ROAS: 2, Impressions: 200, Clicks: 3}.Metrics()
	if m["ctr"] != 1.5 || m["roas"] != 2.0 || m["impressions"] != 200.0 {
		t.Fatalf("unexpected metrics %v", m)
	}
}
