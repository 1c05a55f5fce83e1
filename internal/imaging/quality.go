package imaging

import "math"

// QualityScore rates a raster on resolution and sharpness, range [0,15].
// Resolution contributes up to 8 points relative to a 640x480 baseline,
// sharpness up to 7 from grayscale variance.
func QualityScore(img *Image) int {
	resolution := int(float64(img.Width*img.Height) / (640.0 * 480.0) * 8.0)
	if resolution > 8 {
		resolution = 8
	}
	sharpness := int(grayVariance(img) / 500.0)
	if sharpness > 7 {
		sharpness = 7
	}
	return resolution + sharpness
}

// grayVariance computes the variance of ITU-R 601-2 luma values.
func grayVariance(img *Image) float64 {
	n := img.Width * img.Height
	if n == 0 {
		return 0
	}
	var sum, sumSq float64
	for i := 0; i+2 < len(img.Pix); i += 3 {
		l := math.Floor((299*float64(img.Pix[i]) + 587*float64(img.Pix[i+1]) + 114*float64(img.Pix[i+2])) / 1000)
		sum += l
		sumSq += l * l
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}
