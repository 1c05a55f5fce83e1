package imaging

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestDecodePNG(t *testing.T) {
	src := checkerboard(40, 30, color.RGBA{10, 200, 10, 255}, color.RGBA{200, 10, 200, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src.Src); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if img.Width != 40 || img.Height != 30 {
		t.Fatalf("unexpected dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != 40*30*3 {
		t.Fatalf("unexpected pixel buffer length %d", len(img.Pix))
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("expected error for undecodable bytes")
	}
}

func TestPerceptualHashStability(t *testing.T) {
	a := checkerboard(64, 64, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	b := checkerboard(64, 64, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})

	ha, err := a.PerceptualHash()
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	hb, err := b.PerceptualHash()
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if ha != hb {
		t.Fatalf("identical images hashed differently: %s vs %s", ha, hb)
	}
}

func TestPerceptualHashDistinguishesContent(t *testing.T) {
	// Left-half-dark vs left-half-light: structurally opposite, so the
	// average hash must diverge.
	a := fillImage(64, 64, func(x, y int) color.RGBA {
		if x < 32 {
			return color.RGBA{0, 0, 0, 255}
		}
		return color.RGBA{255, 255, 255, 255}
	})
	b := fillImage(64, 64, func(x, y int) color.RGBA {
		if x < 32 {
			return color.RGBA{255, 255, 255, 255}
		}
		return color.RGBA{0, 0, 0, 255}
	})

	ha, err := a.PerceptualHash()
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	hb, err := b.PerceptualHash()
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if ha == hb {
		t.Fatal("structurally different images produced the same hash")
	}
}

func TestMeanRGB(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{50, 100, 150, 255})
	r, g, b := img.MeanRGB()
	if r != 50 || g != 100 || b != 150 {
		t.Fatalf("unexpected means (%f, %f, %f)", r, g, b)
	}
}

func TestEncodeJPEGRoundTrip(t *testing.T) {
	src := checkerboard(32, 32, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	data, err := src.EncodeJPEG(85)
	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode of encoded output failed: %v", err)
	}
	if img.Width != 32 || img.Height != 32 {
		t.Fatalf("dimensions changed in round trip: %dx%d", img.Width, img.Height)
	}
}
