package serial

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"
)

// EncodePNG re-encodes a decoded raster as PNG at maximum compression.
// Lossless encoding is required so the image decodes back to identical pixel
// content, though not to identical compressed bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageConversion, err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes raw bytes in any registered format.
func DecodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageConversion, err)
	}
	return img, nil
}
