package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestDecodePNGOpaque(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	img, err := Decode(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255}, img.Pix)
}

func TestDecodePNGAlpha(t *testing.T) {
	src := checker()
	src.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Channels)
	assert.Len(t, img.Pix, 16)
	assert.Equal(t, byte(0), img.Pix[15])
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker()))

	img, err := Decode(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, []byte{0, 255, 0}, img.Pix[3:6])
}

// tga builds a 2x1 bottom-up TGA of a red and a blue pixel.
func tga(rle bool) []byte {
	header := make([]byte, 18)
	header[2] = tgaTrueColor
	header[12] = 2
	header[14] = 1
	header[16] = 24
	if rle {
		header[2] = tgaTrueColorRLE
		return append(header, 0x80, 0, 0, 255, 0x00, 255, 0, 0)
	}
	return append(header, 0, 0, 255, 255, 0, 0)
}

func TestDecodeTGA(t *testing.T) {
	for _, rle := range []bool{false, true} {
		img, err := Decode(tga(rle), true)
		require.NoError(t, err)
		assert.Equal(t, "tga", img.Format)
		assert.Equal(t, []byte{255, 0, 0, 0, 0, 255}, img.Pix)
	}
}

func TestDecodeTGATruncated(t *testing.T) {
	data := tga(false)
	_, err := Decode(data[:len(data)-2], true)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), false)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skin.TGA")
	require.NoError(t, os.WriteFile(path, tga(false), 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestFlipVertical(t *testing.T) {
	img := &Image{Width: 1, Height: 3, Channels: 3, Pix: []byte{1, 1, 1, 2, 2, 2, 3, 3, 3}}
	img.FlipVertical()
	assert.Equal(t, []byte{3, 3, 3, 2, 2, 2, 1, 1, 1}, img.Pix)
}
