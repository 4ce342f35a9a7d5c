package ocr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
)

// enhanceForOCR sharpens a prepared PNG so the engine has an easier time with
// low-light phone photos: grayscale, contrast boost, sharpen, then upscale
// when the photo is too small for reliable character detection.
func enhanceForOCR(pngData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decoding image for enhancement: %w", err)
	}

	enhanced := imaging.Grayscale(img)
	enhanced = imaging.AdjustContrast(enhanced, 30)
	enhanced = imaging.Sharpen(enhanced, 1.5)

	if enhanced.Bounds().Dy() < 800 {
		enhanced = imaging.Resize(enhanced, 0, 1200, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, enhanced); err != nil {
		return nil, fmt.Errorf("encoding enhanced PNG: %w", err)
	}

	return buf.Bytes(), nil
}
