package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/interfaces"
	"creativeops/internal/matrix"
	"creativeops/internal/models"
	"creativeops/internal/preview"
)

type VariantHandler struct {
	creatives interfaces.CreativeRepository
	variants  interfaces.VariantRepository
	catalog   *catalog.Catalog
	renderer  preview.Renderer
	validator *validator.Validate
}

func NewVariantHandler(creatives interfaces.CreativeRepository, variants interfaces.VariantRepository, c *catalog.Catalog, renderer preview.Renderer) *VariantHandler {
	return &VariantHandler{
		creatives: creatives,
		variants:  variants,
		catalog:   c,
		renderer:  renderer,
		validator: validator.New(),
	}
}

// loadVariants checks the creative exists and returns its variants.
func (h *VariantHandler) loadVariants(r *http.Request) ([]models.Variant, error) {
	id, err := creativeID(r)
	if err != nil {
		return nil, err
	}
	if _, err := h.creatives.GetByID(r.Context(), id); err != nil {
		return nil, err
	}
	return h.variants.ListByCreative(r.Context(), id)
}

// ListVariants returns the live variant matrix of a creative.
// @Tags Variants
// @Summary List variants
// @Security BearerAuth
// @Produce json
// @Param id path string true "Creative ID"
// @Param include_retired query bool false "Include retired variants"
// @Success 200 {array} models.Variant
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/variants [get]
func (h *VariantHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.loadVariants(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("include_retired") != "true" {
		variants = matrix.Live(variants)
	}
	writeJSON(w, http.StatusOK, variants)
}

type previewResponse struct {
	Platform catalog.PlatformID `json:"platform"`
	ImageRef string             `json:"image_ref"`
}

// GetPreview returns the representative image of one platform.
// @Tags Variants
// @Summary Platform preview
// @Security BearerAuth
// @Produce json
// @Param id path string true "Creative ID"
// @Param platform path string true "Platform id"
// @Success 200 {object} previewResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/preview/{platform} [get]
func (h *VariantHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	platform, err := h.catalog.Lookup(catalog.PlatformID(strings.ToLower(chi.URLParam(r, "platform"))))
	if err != nil {
		writeError(w, r, err)
		return
	}
	variants, err := h.loadVariants(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref, ok := preview.Resolve(platform, preview.FromVariants(variants, platform.ID))
	if !ok {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_available", "no preview available for "+platform.Name)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Platform: platform.ID, ImageRef: ref})
}

type renderResponse struct {
	preview.RenderResult
	Variants []models.Variant `json:"variants"`
}

// RenderVariant requests an image for one platform/size of a creative and
// records the outcome on every live variant with that size.
// @Tags Variants
// @Summary Render a variant
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Creative ID"
// @Param render body models.RenderRequest true "Platform and size"
// @Success 200 {object} renderResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/render [post]
func (h *VariantHandler) RenderVariant(w http.ResponseWriter, r *http.Request) {
	var req models.RenderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}
	platformID := models.PlatformIDs([]string{req.Platform})
	if len(platformID) == 0 {
		writeError(w, r, apperr.New(apperr.CodeInvalidInput, "platform is required"))
		return
	}
	width, height, err := catalog.ParseSizeKey(req.Size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size := catalog.SizeSpec{Width: width, Height: height}.Key()

	variants, err := h.loadVariants(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var targets []models.Variant
	for _, v := range matrix.Live(variants) {
		if v.Platform == platformID[0] && v.Size == size {
			targets = append(targets, v)
		}
	}
	if len(targets) == 0 {
		writeError(w, r, apperr.New(apperr.CodeNotFound, "creative has no live %s variant of size %s", platformID[0], size))
		return
	}

	res, renderErr := h.renderer.RequestRender(r.Context(), platformID[0], size)
	status, ref := models.VariantStatusReady, res.ImageURL
	if renderErr != nil {
		if errors.Is(renderErr, apperr.ErrCancelled) {
			writeError(w, r, renderErr)
			return
		}
		status, ref = models.VariantStatusFailed, ""
	}

	for i := range targets {
		if err := h.variants.SaveRender(r.Context(), targets[i].ID, status, ref); err != nil {
			writeError(w, r, err)
			return
		}
		targets[i].Status, targets[i].ImageRef = status, ref
	}

	if renderErr != nil {
		log.Printf("Render %s/%s failed: %v", platformID[0], size, renderErr)
		writeJSON(w, apperr.CodeOf(renderErr).HTTPStatus(), map[string]any{
			"error":    string(apperr.CodeOf(renderErr)),
			"message":  res.Reason,
			"variants": targets,
		})
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{RenderResult: res, Variants: targets})
}

type importImagesResponse struct {
	Updated  int              `json:"updated"`
	Skipped  []string         `json:"skipped"`
	Variants []models.Variant `json:"variants"`
}

// ImportImages attaches externally generated images to variants. The body is
// an image_data object: {"platform": {"WxH": url-or-render-response}}.
// @Tags Variants
// @Summary Import generated images
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Creative ID"
// @Success 200 {object} importImagesResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/images [post]
func (h *VariantHandler) ImportImages(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, r, apperr.Wrap(apperr.CodeInvalidInput, err, "failed to read body"))
		return
	}
	sets, err := preview.ParseImageData(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	variants, err := h.loadVariants(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	live := matrix.Live(variants)

	resp := importImagesResponse{Skipped: []string{}, Variants: []models.Variant{}}
	for _, set := range sets {
		for _, img := range set.Images {
			matched := false
			for i := range live {
				v := &live[i]
				if v.Platform != set.Platform || v.Size != img.Size {
					continue
				}
				matched = true
				if err := h.variants.SaveRender(r.Context(), v.ID, models.VariantStatusReady, img.Ref); err != nil {
					writeError(w, r, err)
					return
				}
				v.Status, v.ImageRef = models.VariantStatusReady, img.Ref
				resp.Updated++
				resp.Variants = append(resp.Variants, *v)
			}
			if !matched {
				resp.Skipped = append(resp.Skipped, string(set.Platform)+"/"+img.Size)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
