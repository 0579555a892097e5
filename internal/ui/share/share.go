// Package share builds the links used to copy or share an analysis result.
package share

import (
	"net/url"
	"strings"
)

// Platform names a supported share target.
type Platform string

const (
	Twitter  Platform = "twitter"
	Facebook Platform = "facebook"
	WhatsApp Platform = "whatsapp"
)

// PopupFeatures is the window.open feature string for share popups.
const PopupFeatures = "width=600,height=400"

// ResultURL returns the canonical result page for id under origin.
func ResultURL(origin, id string) string {
	return strings.TrimSuffix(origin, "/") + "/results/" + id
}

// URL returns the share URL for platform, or false for unknown platforms.
func URL(platform Platform, resultURL, text string) (string, bool) {
	switch platform {
	case Twitter:
		return "https://twitter.com/intent/tweet?text=" + encodeURIComponent(text) + "&url=" + encodeURIComponent(resultURL), true
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + encodeURIComponent(resultURL), true
	case WhatsApp:
		return "https://wa.me/?text=" + encodeURIComponent(text+" "+resultURL), true
	default:
		return "", false
	}
}

// uriComponentUnescapes restores the characters QueryEscape encodes but the
// browser's encodeURIComponent leaves alone.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent matches the browser function of the same name.
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
