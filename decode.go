package bgmask

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	// Register the decoders accepted as logo sources.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode reads an image from the reader, returning the decoded image and the
// detected format string ("png", "jpeg", "webp", etc.).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// DecodeImageBytes decodes an in-memory image.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	return Decode(bytes.NewReader(data))
}

// EncodePNG writes the provided image to the writer as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
