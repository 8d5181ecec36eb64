package fsutil

import "bytes"

// PlaceholderMarker tags pages written by the scaffolder so that later checks
// can tell them apart from real report output.
const PlaceholderMarker = "<!-- runscaffold:placeholder -->"

// IsPlaceholder checks if data carries the placeholder marker.
func IsPlaceholder(data []byte) bool {
	return bytes.Contains(data, []byte(PlaceholderMarker))
}
