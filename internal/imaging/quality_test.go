package imaging

import (
	"image"
	"image/color"
	"testing"
)

// fillImage builds a raster whose pixel at (x,y) is produced by at.
func fillImage(w, h int, at func(x, y int) color.RGBA) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, at(x, y))
		}
	}
	return FromImage(img)
}

func solidImage(w, h int, c color.RGBA) *Image {
	return fillImage(w, h, func(x, y int) color.RGBA { return c })
}

func checkerboard(w, h int, a, b color.RGBA) *Image {
	return fillImage(w, h, func(x, y int) color.RGBA {
		if (x+y)%2 == 0 {
			return a
		}
		return b
	})
}

func TestQualityScoreTinyBlurryImage(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{128, 128, 128, 255})
	if got := QualityScore(img); got != 0 {
		t.Fatalf("expected quality 0 for tiny flat image, got %d", got)
	}
}

func TestQualityScoreSharpHighResolutionImage(t *testing.T) {
	img := checkerboard(800, 600, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	if got := QualityScore(img); got != 15 {
		t.Fatalf("expected maximum quality 15, got %d", got)
	}
}

func TestQualityScoreResolutionOnly(t *testing.T) {
	// Large but completely flat: full resolution sub-score, zero sharpness.
	img := solidImage(800, 600, color.RGBA{128, 128, 128, 255})
	if got := QualityScore(img); got != 8 {
		t.Fatalf("expected quality 8 for flat high-res image, got %d", got)
	}
}

func TestQualityScoreRange(t *testing.T) {
	images := []*Image{
		solidImage(1, 1, color.RGBA{0, 0, 0, 255}),
		solidImage(50, 50, color.RGBA{240, 10, 10, 255}),
		checkerboard(320, 240, color.RGBA{20, 20, 20, 255}, color.RGBA{230, 230, 230, 255}),
		checkerboard(1920, 1080, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}),
	}
	for i, img := range images {
		got := QualityScore(img)
		if got < 0 || got > 15 {
			t.Fatalf("image %d: quality %d out of range [0,15]", i, got)
		}
	}
}
