// Package images scales photos to the responsive size ladder and caches the results.
//
// Every photo is served in up to seven variants: the original plus six scaled
// widths matching common screen sizes (-sm through -xxxl). Scaling never
// upsizes; a photo narrower than the target width is re-encoded at its
// original dimensions. Scaled output is always JPEG regardless of source
// format, with quality tuned per size so small variants load fast and large
// ones keep detail.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered for decoding PNG sources

	"github.com/nfnt/resize"
)

// Size describes one rung of the responsive size ladder.
type Size struct {
	Suffix  string
	Width   uint
	Quality int
}

// Sizes is the responsive ladder, ordered smallest to largest. Suffixes match
// the /img{suffix} URL forms.
var Sizes = []Size{
	{Suffix: "-sm", Width: 480, Quality: 70},
	{Suffix: "-md", Width: 768, Quality: 75},
	{Suffix: "-lg", Width: 1024, Quality: 80},
	{Suffix: "-xl", Width: 1440, Quality: 82},
	{Suffix: "-xxl", Width: 1920, Quality: 85},
	{Suffix: "-xxxl", Width: 3860, Quality: 90},
}

// originalQuality is used when re-encoding the unscaled original.
const originalQuality = 92

// SizeFor resolves a URL suffix to its ladder entry. The empty suffix means
// the original image.
func SizeFor(suffix string) (Size, bool) {
	if suffix == "" {
		return Size{Suffix: "", Width: 0, Quality: originalQuality}, true
	}
	for _, s := range Sizes {
		if s.Suffix == suffix {
			return s, true
		}
	}
	return Size{}, false
}

// ValidSuffixes lists the accepted suffixes for error messages.
func ValidSuffixes() []string {
	out := make([]string, len(Sizes))
	for i, s := range Sizes {
		out[i] = s.Suffix
	}
	return out
}

// Scale decodes src and re-encodes it as JPEG at the given size.
//
// A zero width keeps the original dimensions. Images already narrower than
// the target are not upscaled.
func Scale(src []byte, size Size) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if size.Width > 0 && uint(img.Bounds().Dx()) > size.Width {
		img = resize.Resize(size.Width, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: size.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}
