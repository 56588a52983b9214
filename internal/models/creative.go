package models

import (
	"strings"
	"time"

	"creativeops/internal/catalog"
)

type FormatType string

const (
	FormatDisplay FormatType = "Display"
	FormatVideo   FormatType = "Video"
	FormatSocial  FormatType = "Social"
	FormatBanner  FormatType = "Banner"
)

// Creative is the base asset that gets expanded into platform variants.
type Creative struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Campaign          string               `json:"campaign"`
	FormatType        FormatType           `json:"format_type"`
	Tags              []string             `json:"tags"`
	SelectedPlatforms []catalog.PlatformID `json:"selected_platforms"`
	BaseImageRef      string               `json:"base_image_ref"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// CreativeDetail is a creative together with its variant matrix.
type CreativeDetail struct {
	*Creative
	Variants        []Variant `json:"variants"`
	TotalVariations int       `json:"total_variations"`
}

type CreateCreativeRequest struct {
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description" validate:"required,max=150"`
	Campaign          string   `json:"campaign" validate:"required"`
	FormatType        string   `json:"format_type" validate:"required,oneof=Display Video Social Banner"`
	Tags              []string `json:"tags"`
	SelectedPlatforms []string `json:"selected_platforms" validate:"required,min=1,dive,oneof=facebook instagram google pinterest tiktok linkedin twitter snapchat"`
	BaseImageRef      string   `json:"base_image_ref" validate:"omitempty,url"`
}

type UpdatePlatformsRequest struct {
	SelectedPlatforms []string `json:"selected_platforms" validate:"required,min=1,dive,oneof=facebook instagram google pinterest tiktok linkedin twitter snapchat"`
}

// CreativeFilter narrows creative listings.
type CreativeFilter struct {
	Platform catalog.PlatformID
	Limit    int
	Offset   int
}

// NormalizeTags trims tags, drops blanks and duplicates, and keeps the first
// occurrence of each in its original position.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// PlatformIDs converts raw platform strings, dropping duplicates.
func PlatformIDs(raw []string) []catalog.PlatformID {
	out := make([]catalog.PlatformID, 0, len(raw))
	seen := make(map[catalog.PlatformID]struct{}, len(raw))
	for _, r := range raw {
		id := catalog.PlatformID(strings.ToLower(strings.TrimSpace(r)))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PlatformStrings is the inverse of PlatformIDs, used for pq.Array columns.
func PlatformStrings(ids []catalog.PlatformID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
