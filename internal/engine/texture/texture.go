// Package texture decodes surface images into tightly packed pixel buffers
// ready for upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Standard decoders, registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	// Extra decoders from x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when image data cannot be decoded.
var ErrDecode = errors.New("cannot decode image")

// Image is decoded pixel data, rows top to bottom unless flipped.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int // 3 for RGB, 4 for RGBA
	Format   string
}

// Load reads and decodes an image file. The format is sniffed from the
// content; TGA, which has no signature, is recognized by extension.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, strings.EqualFold(filepath.Ext(path), ".tga"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image bytes. If tga is set the data is read as TGA.
func Decode(data []byte, tga bool) (*Image, error) {
	var (
		src    image.Image
		format string
		err    error
	)
	if tga {
		src, err = decodeTGA(data)
		format = "tga"
	} else {
		src, format, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	rgba := ToRGBA(src)
	out := &Image{
		Width:    rgba.Rect.Dx(),
		Height:   rgba.Rect.Dy(),
		Format:   format,
		Channels: 4,
		Pix:      rgba.Pix,
	}
	if opaque(rgba) {
		out.Pix = dropAlpha(rgba.Pix)
		out.Channels = 3
	}
	return out, nil
}

// ToRGBA converts any image to a zero-origin *image.RGBA.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// FlipVertical reverses the row order in place, for APIs whose texture
// origin is the bottom-left corner.
func (img *Image) FlipVertical() {
	stride := img.Width * img.Channels
	tmp := make([]byte, stride)
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

func opaque(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

func dropAlpha(pix []byte) []byte {
	out := make([]byte, 0, len(pix)/4*3)
	for i := 0; i+3 < len(pix); i += 4 {
		out = append(out, pix[i], pix[i+1], pix[i+2])
	}
	return out
}
