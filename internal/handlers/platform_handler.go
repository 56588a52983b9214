package handlers

import (
	"net/http"

	"creativeops/internal/catalog"
)

type PlatformHandler struct {
	catalog *catalog.Catalog
}

func NewPlatformHandler(c *catalog.Catalog) *PlatformHandler {
	return &PlatformHandler{catalog: c}
}

type sizeView struct {
	Size        string              `json:"size"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Placement   string              `json:"placement"`
	AspectClass catalog.AspectClass `json:"aspect_class"`
	RatioLabel  string              `json:"ratio_label"`
}

type platformView struct {
	ID      catalog.PlatformID `json:"id"`
	Name    string             `json:"name"`
	AdTypes []string           `json:"ad_types"`
	Sizes   []sizeView         `json:"sizes"`
}

// ListPlatforms returns the platform catalog in display order.
// @Tags Platforms
// @Summary List platforms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} platformView
// @Router /api/v1/platforms [get]
func (h *PlatformHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms := h.catalog.List()
	out := make([]platformView, 0, len(platforms))
	for _, p := range platforms {
		pv := platformView{ID: p.ID, Name: p.Name, AdTypes: p.AdTypes, Sizes: make([]sizeView, 0, len(p.Sizes))}
		for _, s := range p.Sizes {
			pv.Sizes = append(pv.Sizes, sizeView{
				Size:        s.Key(),
				Width:       s.Width,
				Height:      s.Height,
				Placement:   s.Placement,
				AspectClass: s.Aspect(),
				RatioLabel:  s.RatioLabel(),
			})
		}
		out = append(out, pv)
	}
	writeJSON(w, http.StatusOK, out)
}
