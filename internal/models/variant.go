package models

import (
	"fmt"
	"time"

	"creativeops/internal/catalog"
)

type VariantStatus string

const (
	VariantStatusPending VariantStatus = "pending"
	VariantStatusReady   VariantStatus = "ready"
	VariantStatusFailed  VariantStatus = "failed"
)

type DCOState string

const (
	DCOStateInactive   DCOState = "inactive"
	DCOStateProcessing DCOState = "processing"
	DCOStateActive     DCOState = "active"
)

// DefaultVariationCap is how many DCO variations a variant may accumulate.
const DefaultVariationCap = 3

// Variations is a bounded counter of DCO-generated alternatives.
type Variations struct {
	Count int `json:"count"`
	Cap   int `json:"cap"`
}

func (v Variations) String() string {
	return fmt.Sprintf("%d/%d", v.Count, v.Cap)
}

// Full reports whether no more variations may be generated.
func (v Variations) Full() bool {
	return v.Count >= v.Cap
}

// VariantKey identifies a variant within the matrix. Placement is part of the
// key because a platform may list the same pixel size for two placements.
type VariantKey struct {
	CreativeID string
	Platform   catalog.PlatformID
	Size       string
	Placement  string
}

func (k VariantKey) String() string {
	return k.CreativeID + "/" + string(k.Platform) + "/" + k.Size + "/" + k.Placement
}

// Variant is one platform+size rendering target of a creative.
type Variant struct {
	ID          string              `json:"id"`
	CreativeID  string              `json:"creative_id"`
	Platform    catalog.PlatformID  `json:"platform"`
	Size        string              `json:"size"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Placement   string              `json:"placement"`
	AspectClass catalog.AspectClass `json:"aspect_class"`
	RatioLabel  string              `json:"ratio_label"`
	Status      VariantStatus       `json:"status"`
	ImageRef    string              `json:"image_ref,omitempty"`
	DCOState    DCOState            `json:"dco_state"`
	Variations  Variations          `json:"variations"`
	Retired     bool                `json:"retired"`
	RetiredAt   *time.Time          `json:"retired_at,omitempty"`
}

func (v Variant) Key() VariantKey {
	return VariantKey{CreativeID: v.CreativeID, Platform: v.Platform, Size: v.Size, Placement: v.Placement}
}

// VariantMetrics are performance numbers supplied by the analytics feed.
type VariantMetrics struct {
	VariantID   string    `json:"variant_id" validate:"required"`
	Impressions int64     `json:"impressions" validate:"gte=0"`
	Clicks      int64     `json:"clicks" validate:"gte=0"`
	Spend       float64   `json:"spend" validate:"gte=0"`
	Revenue     float64   `json:"revenue" validate:"gte=0"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CTR is clicks over impressions as a percentage, 0 when there are none.
func (m VariantMetrics) CTR() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return float64(m.Clicks) / float64(m.Impressions) * 100
}

// ROAS is revenue over spend, 0 when nothing was spent.
func (m VariantMetrics) ROAS() float64 {
	if m.Spend == 0 {
		return 0
	}
	return m.Revenue / m.Spend
}

type IngestMetricsRequest struct {
	Metrics []VariantMetrics `json:"metrics" validate:"required,min=1,dive"`
}

type RenderRequest struct {
	Platform string `json:"platform" validate:"required"`
	Size     string `json:"size" validate:"required"`
}
