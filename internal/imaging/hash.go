package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/webp"
)

// PerceptualHash computes the dHash of the image, used to spot re-scans of
// perceptually identical images in the history. Returns "" when the image
// cannot be decoded; hashing is best-effort and never blocks an analysis.
func PerceptualHash(data []byte) string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return ""
	}
	return hash.ToString()
}
