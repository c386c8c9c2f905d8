package bgmask

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ProcessFile reads the image at in, masks its background and writes the
// result to out as PNG. The output file is only created once decoding and
// masking have succeeded, and is never left half written.
func ProcessFile(in, out string, p Policy) (Result, error) {
	inFile, err := os.Open(in)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer inFile.Close()

	img, _, err := Decode(inFile)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in, err)
	}

	cleaned, res, err := RemoveBackground(img, p)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in, err)
	}

	if err := WritePNGFile(out, cleaned); err != nil {
		return Result{}, err
	}

	return res, nil
}

// OutputPath derives the output location for in: the same directory, the
// same base name with suffix appended, and a .png extension.
func OutputPath(in, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(filepath.Dir(in), base+suffix+".png")
}

// WritePNGFile encodes img as PNG at path.
func WritePNGFile(path string, img image.Image) error {
	return writeFile(path, func(w io.Writer) error { return EncodePNG(w, img) })
}

// writeFile writes to a temporary file next to path and renames it into
// place once write succeeds. On failure the temporary file is removed and
// path is left as it was.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode output: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
