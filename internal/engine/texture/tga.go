package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

var errTGATruncated = errors.New("TGA data truncated")

// decodeTGA decodes uncompressed and RLE true-color TGA images at 24 or 32
// bits per pixel.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("color-mapped TGA not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", kind)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("TGA has no pixels")
	}
	topDown := data[17]&0x20 != 0

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		src:     data[offset:],
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		size:    bpp / 8,
		topDown: topDown,
	}
	var err error
	if kind == tgaTrueColor {
		err = d.raw(width * height)
	} else {
		err = d.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src     []byte
	pos     int
	img     *image.RGBA
	size    int // Bytes per pixel
	topDown bool
	written int
}

// next reads one BGR(A) pixel as RGBA.
func (d *tgaDecoder) next() ([4]byte, error) {
	if d.pos+d.size > len(d.src) {
		return [4]byte{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.size]
	d.pos += d.size
	px := [4]byte{p[2], p[1], p[0], 0xff}
	if d.size == 4 {
		px[3] = p[3]
	}
	return px, nil
}

// put stores the next pixel in file order, flipping bottom-up files.
func (d *tgaDecoder) put(px [4]byte) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := d.written%w, d.written/w
	if !d.topDown {
		y = h - 1 - y
	}
	copy(d.img.Pix[d.img.PixOffset(x, y):], px[:])
	d.written++
}

func (d *tgaDecoder) raw(count int) error {
	for d.written < count {
		px, err := d.next()
		if err != nil {
			return err
		}
		d.put(px)
	}
	return nil
}

func (d *tgaDecoder) rle(count int) error {
	for d.written < count {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		run := int(header&0x7f) + 1

		if header&0x80 != 0 {
			px, err := d.next()
			if err != nil {
				return err
			}
			for i := 0; i < run && d.written < count; i++ {
				d.put(px)
			}
			continue
		}
		for i := 0; i < run && d.written < count; i++ {
			px, err := d.next()
			if err != nil {
				return err
			}
			d.put(px)
		}
	}
	return nil
}
