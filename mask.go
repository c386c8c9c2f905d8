package bgmask

import (
	"fmt"
	"image"
	"image/color"
)

// Result summarizes a masking pass.
type Result struct {
	Width      int
	Height     int
	Background int // pixels whose alpha was set to zero
	Policy     Policy
}

// Size formats the source dimensions as "(W, H)".
func (r Result) Size() string {
	return fmt.Sprintf("(%d, %d)", r.Width, r.Height)
}

// Mask is a height x width grid marking background pixels.
type Mask struct {
	width, height int
	bits          []bool
}

// Width returns the number of columns in the mask.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows in the mask.
func (m *Mask) Height() int { return m.height }

// At reports whether the pixel at column x, row y is background. Coordinates
// are relative to the top-left corner of the masked image.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Count returns the number of background pixels.
func (m *Mask) Count() int {
	n := 0
	for _, bg := range m.bits {
		if bg {
			n++
		}
	}
	return n
}

// ComputeMask evaluates the policy's background predicate over every pixel.
func ComputeMask(img *image.NRGBA, p Policy) (*Mask, error) {
	if err := checkInput(img, p); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	m := &Mask{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		bits:   make([]bool, bounds.Dx()*bounds.Dy()),
	}

	for row := 0; row < m.height; row++ {
		offset := img.PixOffset(bounds.Min.X, bounds.Min.Y+row)
		for col := 0; col < m.width; col++ {
			px := img.Pix[offset : offset+4 : offset+4]
			m.bits[row*m.width+col] = p.IsBackground(px[0], px[1], px[2])
			offset += 4
		}
	}

	return m, nil
}

// ApplyMask zeroes the alpha of every pixel marked in m. It mutates img in
// place and never touches the color channels.
func ApplyMask(img *image.NRGBA, m *Mask) error {
	if img == nil {
		return fmt.Errorf("nil image provided")
	}
	if m == nil {
		return fmt.Errorf("nil mask provided")
	}

	bounds := img.Bounds()
	if bounds.Dx() != m.width || bounds.Dy() != m.height {
		return fmt.Errorf("mask size %dx%d does not match image %dx%d", m.width, m.height, bounds.Dx(), bounds.Dy())
	}

	for row := 0; row < m.height; row++ {
		offset := img.PixOffset(bounds.Min.X, bounds.Min.Y+row)
		for col := 0; col < m.width; col++ {
			if m.bits[row*m.width+col] {
				img.Pix[offset+3] = 0
			}
			offset += 4
		}
	}

	return nil
}

// MaskInPlace computes and applies the mask in a single pass and returns the
// number of background pixels.
func MaskInPlace(img *image.NRGBA, p Policy) (int, error) {
	if err := checkInput(img, p); err != nil {
		return 0, err
	}

	bounds := img.Bounds()
	cleared := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := img.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if p.IsBackground(img.Pix[offset], img.Pix[offset+1], img.Pix[offset+2]) {
				img.Pix[offset+3] = 0
				cleared++
			}
			offset += 4
		}
	}

	return cleared, nil
}

// RemoveBackground copies img into a new NRGBA buffer and makes its
// background transparent. The input image is left untouched.
func RemoveBackground(img image.Image, p Policy) (*image.NRGBA, Result, error) {
	if img == nil {
		return nil, Result{}, fmt.Errorf("nil image provided")
	}

	out := cloneToNRGBA(img)
	n, err := MaskInPlace(out, p)
	if err != nil {
		return nil, Result{}, err
	}

	bounds := out.Bounds()
	return out, Result{Width: bounds.Dx(), Height: bounds.Dy(), Background: n, Policy: p}, nil
}

func checkInput(img *image.NRGBA, p Policy) error {
	if img == nil {
		return fmt.Errorf("nil image provided")
	}
	if !p.Valid() {
		return fmt.Errorf("invalid policy %v", p)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

// cloneToNRGBA copies the image into a mutable non-premultiplied buffer.
// Non-premultiplied sources keep the high byte of every channel, including
// the color of fully transparent pixels. Only premultiplied sources go
// through color.NRGBAModel.
func cloneToNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	switch s := src.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
				s.Pix[s.PixOffset(bounds.Min.X, y):s.PixOffset(bounds.Max.X, y)])
		}
		return dst
	case *image.NRGBA64:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			si := s.PixOffset(bounds.Min.X, y)
			di := dst.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				// Big-endian 16-bit channels: the high byte comes first.
				dst.Pix[di+0] = s.Pix[si+0]
				dst.Pix[di+1] = s.Pix[si+2]
				dst.Pix[di+2] = s.Pix[si+4]
				dst.Pix[di+3] = s.Pix[si+6]
				si += 8
				di += 4
			}
		}
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetNRGBA(x, y, toNRGBA(src.At(x, y)))
		}
	}
	return dst
}

// toNRGBA converts a single color without a premultiplied round trip when
// the color is stored non-premultiplied (paletted PNGs, lossy WebP with alpha).
func toNRGBA(c color.Color) color.NRGBA {
	switch c := c.(type) {
	case color.NRGBA:
		return c
	case color.NRGBA64:
		return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: uint8(c.A >> 8)}
	case color.NYCbCrA:
		r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
