package bgmask

import "bytes"

// RemoveBackgroundBytes decodes raw image bytes, masks the background with
// the given policy and returns the result encoded as PNG.
func RemoveBackgroundBytes(data []byte, p Policy) ([]byte, Result, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, Result{}, err
	}

	out, res, err := RemoveBackground(img, p)
	if err != nil {
		return nil, Result{}, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, out); err != nil {
		return nil, Result{}, err
	}
	return buf.Bytes(), res, nil
}
