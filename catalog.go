package storefront

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Canonical local asset locations and the fallback image reference
const (
	AssetPrefix      = "/assets/"
	ImageDir         = "/assets/img/"
	PlaceholderImage = "/assets/img/placeholder.png"
)

// imageExtensions are the recognized image file extensions, matched
// case-insensitively against the end of a reference.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg"}

// Product is the canonical catalog item shape. Instances are built by
// NormalizeProduct and immutable afterwards; ImageRef is always an
// absolute URL, a canonical asset path, or PlaceholderImage.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	ImageRef   string `json:"imageRef"`
}

// hasImageExt reports whether s ends in a recognized image extension
func hasImageExt(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ResolveImageRef normalizes a raw image reference from a server record.
// Historical records mix absolute URLs, canonical paths, bare filenames
// and partially-qualified paths; anything that cannot be validated
// degrades to PlaceholderImage instead of reaching the renderer raw.
func ResolveImageRef(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return PlaceholderImage
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if hasImageExt(s) {
			return s
		}
		return PlaceholderImage
	}

	if strings.HasPrefix(s, AssetPrefix) {
		if hasImageExt(s) {
			return s
		}
		return PlaceholderImage
	}

	// Bare filename or relative path: drop leading slashes and a
	// redundant copy of the image dir, then requalify under it.
	f := strings.TrimLeft(s, "/")
	f = strings.TrimPrefix(f, "assets/img")
	f = strings.TrimPrefix(f, "/")
	if hasImageExt(f) {
		return ImageDir + f
	}
	return PlaceholderImage
}

// firstField returns the first present, non-null field among keys
func firstField(raw []byte, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := gjson.GetBytes(raw, k); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

// NormalizeProduct converts one raw product record into the canonical
// Product shape. Field names vary across record generations, so each
// logical field is resolved from a fixed priority list. A malformed
// price coerces to zero cents so one bad record never sinks the catalog.
func NormalizeProduct(raw json.RawMessage) Product {
	price := firstField(raw, "PriceCents", "price_cents", "priceCents").Int()
	if price < 0 {
		// negative prices never render
		price = 0
	}

	return Product{
		ID:         firstField(raw, "ID", "id").Int(),
		Name:       firstField(raw, "Name", "name").String(),
		PriceCents: price,
		ImageRef:   ResolveImageRef(firstField(raw, "ImageURL", "image_url", "imageUrl", "image", "img").String()),
	}
}

// FormatPrice renders a cent amount as a decimal string, e.g. 1250 -> "12.50"
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
