package bgmask

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"unicode"
)

// DecodeBase64Image decodes a base64 image, optionally wrapped in a data URL
// and broken across lines, and returns it with its detected format.
func DecodeBase64Image(input string) (image.Image, string, error) {
	payload := base64Payload(input)

	enc := base64.StdEncoding
	if !strings.HasSuffix(payload, "=") && len(payload)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	data, err := enc.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return DecodeImageBytes(data)
}

// EncodePNGToBase64 encodes an image as PNG and returns a base64 string.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RemoveBackgroundBase64 is RemoveBackgroundBytes for base64 text: it masks
// the decoded image and returns the PNG result base64 encoded.
func RemoveBackgroundBase64(input string, p Policy) (string, Result, error) {
	img, _, err := DecodeBase64Image(input)
	if err != nil {
		return "", Result{}, err
	}

	out, res, err := RemoveBackground(img, p)
	if err != nil {
		return "", Result{}, err
	}

	encoded, err := EncodePNGToBase64(out)
	if err != nil {
		return "", Result{}, err
	}
	return encoded, res, nil
}

// base64Payload drops a "data:<mime>;base64," prefix and all whitespace.
func base64Payload(input string) string {
	input = strings.TrimSpace(input)
	if len(input) >= 5 && strings.EqualFold(input[:5], "data:") {
		if idx := strings.IndexByte(input, ','); idx != -1 {
			input = input[idx+1:]
		}
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}
