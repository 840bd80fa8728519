package media

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/aquamart/aquamart-backend/pkg/enums"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestSniffKindDetectsImages(t *testing.T) {
	kind, mime, _, err := sniffKind(bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("sniff png: %v", err)
	}
	if kind != enums.MediaKindImage {
		t.Fatalf("expected image kind, got %s", kind)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %s", mime)
	}

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	kind, mime, _, err = sniffKind(bytes.NewReader(jpeg))
	if err != nil {
		t.Fatalf("sniff jpeg: %v", err)
	}
	if kind != enums.MediaKindImage || mime != "image/jpeg" {
		t.Fatalf("expected jpeg image, got %s %s", kind, mime)
	}
}

func TestSniffKindRejectsOtherTypes(t *testing.T) {
	_, mime, _, err := sniffKind(bytes.NewReader([]byte("just some text, not an image")))
	if !errors.Is(err, errUnsupportedType) {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
	if mime == "" {
		t.Fatal("expected the detected mime to be reported")
	}
}

func TestSniffKindReplaysHeader(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0xAB}, 4096)...)

	_, _, restored, err := sniffKind(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}

	replayed, err := io.ReadAll(restored)
	if err != nil {
		t.Fatalf("read restored stream: %v", err)
	}
	if !bytes.Equal(replayed, payload) {
		t.Fatalf("restored stream mismatch: %d bytes vs %d", len(replayed), len(payload))
	}
}
