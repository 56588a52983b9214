package handlers

import (
	"net/http"
	"testing"

	"creativeops/internal/apperr"
	"creativeops/internal/models"
)

func TestPreviewNotAvailableUntilRendered(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "google")

	w := api.do(t, http.MethodGet, "/creatives/"+c.ID+"/preview/google", nil)
	expectStatus(t, w, http.StatusNotFound)
	if resp := decode[map[string]any](t, w); resp["error"] != "not_available" {
		t.Fatalf("expected not_available, got %v", resp)
	}

	expectStatus(t, api.do(t, http.MethodGet, "/creatives/"+c.ID+"/preview/myspace", nil), http.StatusNotFound)
}

func TestRenderMarksVariantsAndFeedsPreview(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "google")

	// A banner render alone becomes the preview because no square is ready.
	w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google", "size": "728x90"})
	expectStatus(t, w, http.StatusOK)
	res := decode[renderResponse](t, w)
	if res.ImageURL != "https://cdn.example/render.png" || len(res.Variants) != 1 || res.Variants[0].Status != models.VariantStatusReady {
		t.Fatalf("unexpected render response %+v", res)
	}

	w = api.do(t, http.MethodGet, "/creatives/"+c.ID+"/preview/google", nil)
	expectStatus(t, w, http.StatusOK)
	if p := decode[previewResponse](t, w); p.ImageRef != "https://cdn.example/render.png" {
		t.Fatalf("unexpected preview %+v", p)
	}

	// Once the square size is ready it wins.
	api.renderer.url = "https://cdn.example/square.png"
	expectStatus(t, api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google", "size": "300x300"}), http.StatusOK)
	w = api.do(t, http.MethodGet, "/creatives/"+c.ID+"/preview/google", nil)
	if p := decode[previewResponse](t, w); p.ImageRef != "https://cdn.example/square.png" {
		t.Fatalf("expected square preview, got %+v", p)
	}

	if len(api.renderer.calls) != 2 || api.renderer.calls[0] != "google/728x90" {
		t.Fatalf("unexpected renderer calls %v", api.renderer.calls)
	}
}

func TestRenderUpdatesEveryPlacementOfTheSize(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "tiktok")

	w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "tiktok", "size": "1080x1920"})
	expectStatus(t, w, http.StatusOK)
	if res := decode[renderResponse](t, w); len(res.Variants) != 2 {
		t.Fatalf("expected both tiktok placements, got %d", len(res.Variants))
	}
}

func TestRenderFailureMarksVariantFailed(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "snapchat")
	api.renderer.err = apperr.New(apperr.CodeRenderUnavailable, "render service returned 500")

	w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "snapchat", "size": "1080x1920"})
	expectStatus(t, w, http.StatusBadGateway)
	resp := decode[map[string]any](t, w)
	if resp["error"] != "render_unavailable" || resp["message"] != "render service returned 500" {
		t.Fatalf("unexpected response %v", resp)
	}
	if v := api.store.variants[c.ID][0]; v.Status != models.VariantStatusFailed {
		t.Fatalf("expected failed variant, got %+v", v)
	}
	if len(api.renderer.calls) != 1 {
		t.Fatalf("render must not be retried, got %d calls", len(api.renderer.calls))
	}
}

func TestRenderRejectsUnknownSize(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "google")

	expectStatus(t, api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google", "size": "1x1"}), http.StatusNotFound)
	expectStatus(t, api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google"}), http.StatusBadRequest)
	for _, bad := range []string{"abc", "728x", "0x90", "728by90"} {
		w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google", "size": bad})
		expectStatus(t, w, http.StatusBadRequest)
		if resp := decode[map[string]any](t, w); resp["error"] != "invalid_input" {
			t.Fatalf("size %q: expected invalid_input, got %v", bad, resp)
		}
	}
	if len(api.renderer.calls) != 0 {
		t.Fatalf("renderer should not be called, got %v", api.renderer.calls)
	}
}

func TestRenderNormalizesSizeKey(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "google")

	w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/render", map[string]any{"platform": "google", "size": " 0728x90 "})
	expectStatus(t, w, http.StatusOK)
	if len(api.renderer.calls) != 1 || api.renderer.calls[0] != "google/728x90" {
		t.Fatalf("expected a render of google/728x90, got %v", api.renderer.calls)
	}
}

func TestImportImages(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCreative(t, "A", "google", "snapchat")

	body := `{
		"google": {"300x250": "https://cdn/a.png", "123x45": "https://cdn/none.png"},
		"snapchat": {"1080x1920": {"creative": {"versions": [{"imageUrl": "https://cdn/snap.png"}]}}}
	}`
	w := api.do(t, http.MethodPost, "/creatives/"+c.ID+"/images", body)
	expectStatus(t, w, http.StatusOK)
	resp := decode[importImagesResponse](t, w)
	if resp.Updated != 2 || len(resp.Skipped) != 1 || resp.Skipped[0] != "google/123x45" {
		t.Fatalf("unexpected import result %+v", resp)
	}

	w = api.do(t, http.MethodGet, "/creatives/"+c.ID+"/preview/snapchat", nil)
	if p := decode[previewResponse](t, w); p.ImageRef != "https://cdn/snap.png" {
		t.Fatalf("unexpected snapchat preview %+v", p)
	}

	expectStatus(t, api.do(t, http.MethodPost, "/creatives/"+c.ID+"/images", "[1,2]"), http.StatusBadRequest)
}

func TestListPlatforms(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/platforms", nil)
	expectStatus(t, w, http.StatusOK)

	platforms := decode[[]platformView](t, w)
	if len(platforms) != 8 || platforms[0].ID != "facebook" {
		t.Fatalf("unexpected catalog %+v", platforms)
	}
	link := platforms[0].Sizes[2]
	if link.Size != "1200x628" || link.RatioLabel != "300:157" || link.AspectClass != "landscape" {
		t.Fatalf("unexpected size view %+v", link)
	}
}
