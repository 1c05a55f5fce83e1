package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/webp"
)

// Image is a decoded RGB raster. It is request-scoped: decoded once per
// analysis call and discarded when the pipeline completes. Pix holds
// row-major RGB triplets extracted once at decode time so the numeric
// scorers avoid repeated colour-model conversions.
type Image struct {
	Src    image.Image
	Width  int
	Height int
	Pix    []uint8
}

// Decode parses raw bytes into an RGB raster. JPEG, PNG, GIF and WebP are
// supported.
func Decode(data []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return FromImage(src), nil
}

// FromImage converts an already decoded image into an RGB raster.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			pix = append(pix, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return &Image{Src: src, Width: w, Height: h, Pix: pix}
}

// EncodeJPEG re-encodes the raster for collaborator uploads.
func (img *Image) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.Src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// PerceptualHash fingerprints the raster via a 64x64 average hash. The hash
// collapses near-duplicate images to the same key, which is exactly what the
// species cache wants.
func (img *Image) PerceptualHash() (string, error) {
	hash, err := goimagehash.ExtAverageHash(img.Src, 64, 64)
	if err != nil {
		return "", fmt.Errorf("perceptual hash: %w", err)
	}
	return hash.ToString(), nil
}

// MeanRGB returns the mean intensity of each channel.
func (img *Image) MeanRGB() (r, g, b float64) {
	n := float64(img.Width * img.Height)
	if n == 0 {
		return 0, 0, 0
	}
	var sr, sg, sb float64
	for i := 0; i+2 < len(img.Pix); i += 3 {
		sr += float64(img.Pix[i])
		sg += float64(img.Pix[i+1])
		sb += float64(img.Pix[i+2])
	}
	return sr / n, sg / n, sb / n
}

// pixelVariance is the variance over every channel value in the raster.
func pixelVariance(img *Image) float64 {
	n := len(img.Pix)
	if n == 0 {
		return 0
	}
	var sum, sumSq float64
	for _, p := range img.Pix {
		f := float64(p)
		sum += f
		sumSq += f * f
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}
