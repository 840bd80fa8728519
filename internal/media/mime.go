package media

import (
	"bytes"
	"io"
	"strings"

	"github.com/aquamart/aquamart-backend/pkg/enums"
	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

var kindByMime = map[string]enums.MediaKind{
	"image/jpeg": enums.MediaKindImage,
	"image/png":  enums.MediaKindImage,
	"image/webp": enums.MediaKindImage,
	"image/gif":  enums.MediaKindImage,
	"video/mp4":  enums.MediaKindVideo,
	"video/webm": enums.MediaKindVideo,
}

// sniffKind detects the content type from the stream's leading bytes and maps
// it onto a media kind. The returned reader replays the consumed header, so
// callers upload the untouched stream. Declared file names and content types
// are never trusted.
func sniffKind(r io.Reader) (enums.MediaKind, string, io.Reader, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", nil, err
	}
	header = header[:n]

	detected := mimetype.Detect(header).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}

	kind, ok := kindByMime[detected]
	restored := io.MultiReader(bytes.NewReader(header), r)
	if !ok {
		return "", detected, restored, errUnsupportedType
	}
	return kind, detected, restored, nil
}
