// Package imaging normalizes uploaded shop pictures to bounded WebP.
package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const (
	MaxSide      = 1024
	maxInputSide = 10000
	quality      = 80
	ContentType  = "image/webp"
)

var (
	ErrUnsupported = httperr.Validation("invalid_image", "Desteklenmeyen veya bozuk görsel")
	ErrTooLarge    = httperr.Validation("image_too_large", "Görsel boyutları çok büyük")
)

// ToWebP decodes png, jpeg or webp input, fits it into MaxSide x MaxSide
// keeping the aspect ratio, and encodes it as WebP.
func ToWebP(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupported
	}
	if cfg.Width > maxInputSide || cfg.Height > maxInputSide {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupported
	}

	img := Fit(src, MaxSide)

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return nil, httperr.Internal("image_encode_failed", err)
	}
	return buf.Bytes(), nil
}

// Fit scales src down so neither side exceeds side. Smaller images are kept as is.
func Fit(src image.Image, side int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return src
	}

	nw, nh := side, side
	if w >= h {
		nh = h * side / w
	} else {
		nw = w * side / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Quality: quality})
}
