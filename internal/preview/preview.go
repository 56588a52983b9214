// Package preview picks the representative image of a platform's variants and
// defines the contract for on-demand renders.
package preview

import (
	"context"

	"github.com/tidwall/gjson"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/models"
)

// Entry is one generated image for a size key ("WxH").
type Entry struct {
	Size string `json:"size"`
	Ref  string `json:"ref"`
}

// Images is an ordered size-key to image-reference mapping.
type Images []Entry

// Lookup returns the first reference stored for size.
func (im Images) Lookup(size string) (string, bool) {
	for _, e := range im {
		if e.Size == size && e.Ref != "" {
			return e.Ref, true
		}
	}
	return "", false
}

// Resolve returns the preview for a platform: the first square size, in the
// platform's size order, that has an image; otherwise the first image in
// iteration order. ok is false when there is nothing to show.
func Resolve(p catalog.Platform, images Images) (ref string, ok bool) {
	if len(images) == 0 {
		return "", false
	}
	for _, s := range p.Sizes {
		if s.Aspect() != catalog.AspectSquare {
			continue
		}
		if ref, ok := images.Lookup(s.Key()); ok {
			return ref, true
		}
	}
	for _, e := range images {
		if e.Ref != "" {
			return e.Ref, true
		}
	}
	return "", false
}

// FromVariants collects the images of ready, live variants of one platform in
// matrix order.
func FromVariants(variants []models.Variant, platform catalog.PlatformID) Images {
	var out Images
	for _, v := range variants {
		if v.Platform != platform || v.Retired || v.Status != models.VariantStatusReady || v.ImageRef == "" {
			continue
		}
		out = append(out, Entry{Size: v.Size, Ref: v.ImageRef})
	}
	return out
}

// PlatformImages is the per-platform image set of a creative, in document order.
type PlatformImages struct {
	Platform catalog.PlatformID
	Images   Images
}

// ParseImageData reads an image_data object shaped as
// {"platform": {"WxH": url-or-object}} keeping key order. Object values are
// reduced to a URL with ExtractURL; entries without a URL are skipped.
func ParseImageData(data []byte) ([]PlatformImages, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperr.New(apperr.CodeInvalidInput, "image_data is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, apperr.New(apperr.CodeInvalidInput, "image_data must be an object")
	}

	var out []PlatformImages
	root.ForEach(func(platform, sizes gjson.Result) bool {
		pi := PlatformImages{Platform: catalog.PlatformID(platform.String())}
		if sizes.IsObject() {
			sizes.ForEach(func(size, value gjson.Result) bool {
				ref := value.String()
				if value.IsObject() {
					ref, _ = ExtractURL(value)
				}
				if ref != "" {
					pi.Images = append(pi.Images, Entry{Size: size.String(), Ref: ref})
				}
				return true
			})
		}
		out = append(out, pi)
		return true
	})
	return out, nil
}

// urlPaths lists where a render response may carry the image URL, in order of
// precedence.
var urlPaths = []string{
	"s3_url",
	"creative.versions.0.imageUrl",
	"imageUrl",
}

// ExtractURL pulls the first available image URL out of a render response.
func ExtractURL(body gjson.Result) (string, bool) {
	for _, p := range urlPaths {
		if v := body.Get(p); v.Exists() && v.Type == gjson.String && v.Str != "" {
			return v.Str, true
		}
	}
	return "", false
}

// RenderResult is the outcome of one render request. Exactly one of ImageURL
// or Failed is set.
type RenderResult struct {
	ImageURL string `json:"image_url,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Renderer asks a remote generation service for one platform/size image.
//
// A call is a single attempt; failures are returned as RenderUnavailable or
// Cancelled errors alongside a failed RenderResult and are never retried.
type Renderer interface {
	RequestRender(ctx context.Context, platform catalog.PlatformID, size string) (RenderResult, error)
}
