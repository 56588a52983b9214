// Package catalog is the registry of advertising platforms and the pixel
// sizes each placement requires.
//
// A Catalog never changes after construction, so any number of goroutines
// may read it without locking.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"creativeops/internal/apperr"
)

// PlatformID identifies a supported advertising platform.
type PlatformID string

const (
	Facebook  PlatformID = "facebook"
	Instagram PlatformID = "instagram"
	Google    PlatformID = "google"
	Pinterest PlatformID = "pinterest"
	TikTok    PlatformID = "tiktok"
	LinkedIn  PlatformID = "linkedin"
	Twitter   PlatformID = "twitter"
	Snapchat  PlatformID = "snapchat"
)

// AspectClass buckets a size by orientation.
type AspectClass string

const (
	AspectSquare    AspectClass = "square"
	AspectLandscape AspectClass = "landscape"
	AspectPortrait  AspectClass = "portrait"
)

// SizeSpec is one required pixel size for a placement on a platform.
type SizeSpec struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Placement string     `json:"placement"`
	Platform  PlatformID `json:"platform"`
}

// Key returns the "WxH" form used by the render service and image maps.
func (s SizeSpec) Key() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Aspect classifies the size as square, landscape or portrait.
func (s SizeSpec) Aspect() AspectClass {
	switch {
	case s.Width == s.Height:
		return AspectSquare
	case s.Width > s.Height:
		return AspectLandscape
	default:
		return AspectPortrait
	}
}

// RatioLabel returns width:height reduced by their greatest common divisor,
// e.g. 1080x1920 -> "9:16" and 1200x628 -> "300:157".
func (s SizeSpec) RatioLabel() string {
	return RatioLabel(s.Width, s.Height)
}

// RatioLabel reduces w:h by their GCD.
func RatioLabel(w, h int) string {
	g := gcd(w, h)
	if g == 0 {
		return strconv.Itoa(w) + ":" + strconv.Itoa(h)
	}
	return strconv.Itoa(w/g) + ":" + strconv.Itoa(h/g)
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseSizeKey parses a "WxH" key.
func ParseSizeKey(key string) (int, int, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(key), "x")
	if !ok {
		return 0, 0, apperr.New(apperr.CodeInvalidInput, "size %q must look like WIDTHxHEIGHT", key)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, apperr.New(apperr.CodeInvalidInput, "size %q has an invalid width", key)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, apperr.New(apperr.CodeInvalidInput, "size %q has an invalid height", key)
	}
	return width, height, nil
}

// Platform is one advertising platform and its ordered size requirements.
type Platform struct {
	ID      PlatformID `json:"id"`
	Name    string     `json:"name"`
	AdTypes []string   `json:"ad_types"`
	Sizes   []SizeSpec `json:"sizes"`
}

// Catalog is an immutable, ordered set of platforms.
type Catalog struct {
	platforms []Platform
	index     map[PlatformID]int
}

// New builds a catalog from the given platforms, in order. Each SizeSpec's
// Platform back-reference is set to its owner.
func New(platforms ...Platform) (*Catalog, error) {
	c := &Catalog{
		platforms: make([]Platform, 0, len(platforms)),
		index:     make(map[PlatformID]int, len(platforms)),
	}
	for _, p := range platforms {
		if p.ID == "" {
			return nil, apperr.New(apperr.CodeInvalidInput, "platform id is required")
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, apperr.New(apperr.CodeInvalidInput, "platform %q registered twice", p.ID)
		}
		sizes := make([]SizeSpec, len(p.Sizes))
		for i, s := range p.Sizes {
			if s.Width <= 0 || s.Height <= 0 {
				return nil, apperr.New(apperr.CodeInvalidInput, "platform %q: size %dx%d must be positive", p.ID, s.Width, s.Height)
			}
			s.Platform = p.ID
			sizes[i] = s
		}
		p.Sizes = sizes
		p.AdTypes = append([]string(nil), p.AdTypes...)
		c.index[p.ID] = len(c.platforms)
		c.platforms = append(c.platforms, p)
	}
	return c, nil
}

// List returns all platforms in catalog order. The result is a copy.
func (c *Catalog) List() []Platform {
	out := make([]Platform, len(c.platforms))
	for i, p := range c.platforms {
		out[i] = clonePlatform(p)
	}
	return out
}

// Lookup returns the platform with the given id.
func (c *Catalog) Lookup(id PlatformID) (Platform, error) {
	i, ok := c.index[id]
	if !ok {
		return Platform{}, apperr.New(apperr.CodeNotFound, "unknown platform %q", id)
	}
	return clonePlatform(c.platforms[i]), nil
}

// SizesFor returns the ordered sizes of a platform.
func (c *Catalog) SizesFor(id PlatformID) ([]SizeSpec, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "unknown platform %q", id)
	}
	return append([]SizeSpec(nil), c.platforms[i].Sizes...), nil
}

// Has reports whether id is registered.
func (c *Catalog) Has(id PlatformID) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns the platform ids in catalog order.
func (c *Catalog) IDs() []PlatformID {
	out := make([]PlatformID, len(c.platforms))
	for i, p := range c.platforms {
		out[i] = p.ID
	}
	return out
}

func clonePlatform(p Platform) Platform {
	p.Sizes = append([]SizeSpec(nil), p.Sizes...)
	p.AdTypes = append([]string(nil), p.AdTypes...)
	return p
}

func (id PlatformID) String() string { return string(id) }

// MustNew is New that panics; used for the built-in table.
func MustNew(platforms ...Platform) *Catalog {
	c, err := New(platforms...)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}
