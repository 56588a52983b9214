package handlers

import (
	"context"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"creativeops/internal/apperr"
	"creativeops/internal/config"
	"creativeops/internal/interfaces"
	"creativeops/internal/matrix"
	"creativeops/internal/models"
)

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type CreativeHandler struct {
	repo      interfaces.CreativeRepository
	variants  interfaces.VariantRepository
	generator *matrix.Generator
	uploader  objectUploader
	s3Config  *config.S3Config
	validator *validator.Validate
	now       func() time.Time
}

func NewCreativeHandler(repo interfaces.CreativeRepository, variants interfaces.VariantRepository, generator *matrix.Generator, s3Config *config.S3Config) *CreativeHandler {
	h := &CreativeHandler{
		repo:      repo,
		variants:  variants,
		generator: generator,
		s3Config:  s3Config,
		validator: validator.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	if s3Config.Enabled() {
		h.uploader = manager.NewUploader(s3Config.Client)
	}
	return h
}

type creativeListItem struct {
	*models.Creative
	TotalVariations int `json:"total_variations"`
}

type creativeListResponse struct {
	Creatives  []creativeListItem `json:"creatives"`
	Pagination paginationMeta     `json:"pagination"`
}

func validationError(err error) error {
	return apperr.Wrap(apperr.CodeInvalidInput, err, "validation failed: %s", err.Error())
}

// creativeID reads and checks the {id} path parameter.
func creativeID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.New(apperr.CodeInvalidInput, "creative id must be a valid UUID")
	}
	return id, nil
}

// CreateCreative stores a creative and its generated variant matrix.
// @Tags Creatives
// @Summary Create creative
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param creative body models.CreateCreativeRequest true "Creative"
// @Success 201 {object} models.CreativeDetail
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/creatives [post]
func (h *CreativeHandler) CreateCreative(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCreativeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Campaign = strings.TrimSpace(req.Campaign)
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	now := h.now()
	creative := &models.Creative{
		ID:                uuid.New().String(),
		Title:             req.Title,
		Description:       req.Description,
		Campaign:          req.Campaign,
		FormatType:        models.FormatType(req.FormatType),
		Tags:              models.NormalizeTags(req.Tags),
		SelectedPlatforms: models.PlatformIDs(req.SelectedPlatforms),
		BaseImageRef:      req.BaseImageRef,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	variants, err := h.generator.Generate(creative)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.repo.Create(r.Context(), creative, variants); err != nil {
		writeError(w, r, err)
		return
	}

	log.Printf("Created creative %s with %d variants", creative.ID, len(variants))
	writeJSON(w, http.StatusCreated, models.CreativeDetail{
		Creative:        creative,
		Variants:        variants,
		TotalVariations: len(variants),
	})
}

// ListCreatives returns a page of creatives, optionally filtered by platform.
// @Tags Creatives
// @Summary List creatives
// @Security BearerAuth
// @Produce json
// @Param platform_filter query string false "Platform id"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} creativeListResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/creatives [get]
func (h *CreativeHandler) ListCreatives(w http.ResponseWriter, r *http.Request) {
	page, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := models.CreativeFilter{Limit: page.limit, Offset: page.offset}
	if raw := strings.TrimSpace(r.URL.Query().Get("platform_filter")); raw != "" {
		ids := models.PlatformIDs([]string{raw})
		if cat := h.generator.Catalog(); !cat.Has(ids[0]) {
			writeError(w, r, apperr.New(apperr.CodeInvalidInput, "unknown platform %q, expected one of %v", raw, cat.IDs()))
			return
		}
		filter.Platform = ids[0]
	}

	creatives, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := h.repo.Count(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids := make([]string, len(creatives))
	for i, c := range creatives {
		ids[i] = c.ID
	}
	counts, err := h.repo.CountVariations(r.Context(), ids)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]creativeListItem, len(creatives))
	for i, c := range creatives {
		items[i] = creativeListItem{Creative: c, TotalVariations: counts[c.ID]}
	}
	writeJSON(w, http.StatusOK, creativeListResponse{Creatives: items, Pagination: page.meta(total)})
}

// GetCreative returns a creative with its full variant history.
// @Tags Creatives
// @Summary Get creative
// @Security BearerAuth
// @Produce json
// @Param id path string true "Creative ID"
// @Success 200 {object} models.CreativeDetail
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id} [get]
func (h *CreativeHandler) GetCreative(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	creative, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	variants, err := h.variants.ListByCreative(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.CreativeDetail{
		Creative:        creative,
		Variants:        variants,
		TotalVariations: len(matrix.Live(variants)),
	})
}

type updatePlatformsResponse struct {
	Creative *models.Creative `json:"creative"`
	Added    []models.Variant `json:"added"`
	Retained []models.Variant `json:"retained"`
	Retired  []models.Variant `json:"retired"`
}

// UpdatePlatforms changes the platform selection and reconciles the matrix.
// @Tags Creatives
// @Summary Update selected platforms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Creative ID"
// @Param platforms body models.UpdatePlatformsRequest true "Platforms"
// @Success 200 {object} updatePlatformsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/platforms [put]
func (h *CreativeHandler) UpdatePlatforms(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdatePlatformsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	creative, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	previous, err := h.variants.ListByCreative(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	creative.SelectedPlatforms = models.PlatformIDs(req.SelectedPlatforms)
	rec, err := h.generator.Reconcile(creative, previous, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.repo.UpdatePlatforms(r.Context(), creative, rec.All()); err != nil {
		writeError(w, r, err)
		return
	}

	log.Printf("Reconciled creative %s: +%d =%d -%d", id, len(rec.Added), len(rec.Retained), len(rec.Retired))
	writeJSON(w, http.StatusOK, updatePlatformsResponse{
		Creative: creative,
		Added:    nonNil(rec.Added),
		Retained: nonNil(rec.Retained),
		Retired:  nonNil(rec.Retired),
	})
}

func nonNil(v []models.Variant) []models.Variant {
	if v == nil {
		return []models.Variant{}
	}
	return v
}

// UploadBaseImage stores the creative's base image in S3.
// @Tags Creatives
// @Summary Upload base image
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Creative ID"
// @Param file formData file true "Image file"
// @Success 200 {object} models.Creative
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/creatives/{id}/image [post]
func (h *CreativeHandler) UploadBaseImage(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if h.uploader == nil {
		writeJSONErrorResponse(w, http.StatusServiceUnavailable, "storage_unavailable", "object storage is not configured")
		return
	}

	const maxMemory = 32 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "Failed to parse form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeJSONErrorResponse(w, http.StatusBadRequest, string(apperr.CodeInvalidInput), "file must be an image")
		return
	}

	if _, err := h.repo.GetByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	key := path.Join("creatives", id, "base"+strings.ToLower(path.Ext(header.Filename)))
	_, err = h.uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(h.s3Config.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Failed to upload base image for creative %s: %v", id, err)
		writeJSONErrorResponse(w, http.StatusBadGateway, "upload_failed", "Failed to upload image")
		return
	}

	url := h.s3Config.ObjectURL(key)
	if err := h.repo.UpdateBaseImage(r.Context(), id, url); err != nil {
		writeError(w, r, err)
		return
	}

	creative, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, creative)
}

// DeleteCreative removes a creative and its variants.
// @Tags Creatives
// @Summary Delete creative
// @Security BearerAuth
// @Param id path string true "Creative ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/creatives/{id} [delete]
func (h *CreativeHandler) DeleteCreative(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
