package imaging

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bep/imagemeta"

	"github.com/verilens/verilens/internal/model"
)

// exifTags maps the EXIF tags captured onto record metadata
var exifTags = map[string]bool{
	"Make":     true,
	"Model":    true,
	"Software": true,
}

// ReadMeta captures camera EXIF fields from the image bytes. Purely
// informational: stored on the scan record as source metadata, never fed
// into classification. Returns zero-value meta when parsing fails.
func ReadMeta(data []byte) model.ImageMeta {
	meta := model.ImageMeta{}
	if len(data) == 0 {
		return meta
	}

	if mime, err := Sniff(data); err == nil {
		meta.Format = mime
	}

	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return exifTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			value := strings.TrimSpace(fmt.Sprint(ti.Value))
			if value == "" {
				return nil
			}
			switch ti.Tag {
			case "Make":
				meta.CameraMake = value
			case "Model":
				meta.CameraModel = value
			case "Software":
				meta.Software = value
			}
			return nil
		},
	})
	if err != nil {
		// Keep whatever was captured before the parse failed.
		return meta
	}
	return meta
}
