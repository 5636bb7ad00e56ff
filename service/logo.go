package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
)

const (
	// Max dimensions for the receipt-header logo, in pixels.
	logoMaxWidth  = 240
	logoMaxHeight = 120
)

// PrepareLogo loads the shop logo, downscales it to receipt-header size and
// returns it PNG-encoded for embedding in generated documents.
func PrepareLogo(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo file: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	log.Printf("📸 Logo decoded: format=%s, bounds=%v", format, img.Bounds())

	resized := imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("failed to encode logo: %w", err)
	}
	return buf.Bytes(), nil
}
