package enums

import "fmt"

// MediaKind distinguishes how a stored media asset is rendered.
type MediaKind string

const (
	MediaKindImage   MediaKind = "IMAGE"
	MediaKindVideo   MediaKind = "VIDEO"
	MediaKindYouTube MediaKind = "YOUTUBE"
)

var validMediaKinds = []MediaKind{
	MediaKindImage,
	MediaKindVideo,
	MediaKindYouTube,
}

// String returns the literal string for the kind.
func (m MediaKind) String() string {
	return string(m)
}

// IsValid reports whether the kind is known.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}
