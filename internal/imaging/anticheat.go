package imaging

// CheatVerdict aggregates the anti-cheat heuristics for one raster.
type CheatVerdict struct {
	IsSuspicious         bool     `json:"is_suspicious"`
	Issues               []string `json:"issues"`
	ConfidencePenalty    int      `json:"confidence_penalty"`
	RequiresManualReview bool     `json:"requires_manual_review"`
}

const (
	maxCheatPenalty = 50

	blankVarianceFloor  = 200
	bandVarianceFloor   = 5
	bandFractionFloor   = 0.3
	dominantColourFloor = 0.75
	overexposureFloor   = 230
)

// screenSizes enumerates common device resolutions. The screenshot check only
// fires on an exact (w,h) or transposed match; unlisted resolutions are a
// known coverage gap.
var screenSizes = map[[2]int]struct{}{
	{1080, 1920}: {},
	{1920, 1080}: {},
	{2160, 3840}: {},
	{3840, 2160}: {},
	{1284, 2778}: {},
	{1170, 2532}: {},
	{1125, 2436}: {},
	{750, 1334}:  {},
	{1080, 2340}: {},
	{1080, 2400}: {},
	{1080, 2280}: {},
	{2560, 1600}: {},
	{1440, 900}:  {},
	{1366, 768}:  {},
	{1920, 1200}: {},
}

// DetectCheating runs four independent heuristics over the raster. Each check
// adds at most one issue and a fixed penalty; accumulation is commutative, so
// check order never changes the verdict.
func DetectCheating(img *Image) CheatVerdict {
	issues := []string{}
	penalty := 0

	if pixelVariance(img) < blankVarianceFloor {
		issues = append(issues, "Image appears blank or solid colour")
		penalty += 30
	}

	if isScreenResolution(img.Width, img.Height) && bandScore(img) > bandFractionFloor {
		issues = append(issues, "Screenshot resolution with UI-like bands detected")
		penalty += 20
	}

	if share, ok := dominantColourShare(img); ok && share > dominantColourFloor {
		issues = append(issues, "Unnaturally uniform colour - possible clip-art or stock image")
		penalty += 15
	}

	r, g, b := img.MeanRGB()
	if (r+g+b)/3 > overexposureFloor {
		issues = append(issues, "Image severely overexposed - possible screen re-photography")
		penalty += 10
	}

	if penalty > maxCheatPenalty {
		penalty = maxCheatPenalty
	}
	return CheatVerdict{
		IsSuspicious:         len(issues) > 0,
		Issues:               issues,
		ConfidencePenalty:    penalty,
		RequiresManualReview: len(issues) >= 2,
	}
}

func isScreenResolution(w, h int) bool {
	if _, ok := screenSizes[[2]int{w, h}]; ok {
		return true
	}
	_, ok := screenSizes[[2]int{h, w}]
	return ok
}

// bandScore measures how much of the raster is made of flat horizontal or
// vertical colour bands, typical of UI chrome in screenshots. It returns the
// sum of the low-variance row fraction and the low-variance column fraction.
func bandScore(img *Image) float64 {
	w, h := img.Width, img.Height
	if w == 0 || h == 0 {
		return 0
	}

	lowRows := 0
	for y := 0; y < h; y++ {
		var sum, sumSq [3]float64
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			for c := 0; c < 3; c++ {
				f := float64(img.Pix[i+c])
				sum[c] += f
				sumSq[c] += f * f
			}
		}
		var meanVar float64
		for c := 0; c < 3; c++ {
			mean := sum[c] / float64(w)
			meanVar += sumSq[c]/float64(w) - mean*mean
		}
		if meanVar/3 < bandVarianceFloor {
			lowRows++
		}
	}

	lowCols := 0
	for x := 0; x < w; x++ {
		var sum, sumSq [3]float64
		for y := 0; y < h; y++ {
			i := (y*w + x) * 3
			for c := 0; c < 3; c++ {
				f := float64(img.Pix[i+c])
				sum[c] += f
				sumSq[c] += f * f
			}
		}
		var meanVar float64
		for c := 0; c < 3; c++ {
			mean := sum[c] / float64(h)
			meanVar += sumSq[c]/float64(h) - mean*mean
		}
		if meanVar/3 < bandVarianceFloor {
			lowCols++
		}
	}

	return float64(lowRows)/float64(h) + float64(lowCols)/float64(w)
}

// dominantColourShare quantizes the raster to 8 colours (one bit per channel)
// and reports the share of the dominant bucket. ok is false when the raster
// holds no pixels.
func dominantColourShare(img *Image) (share float64, ok bool) {
	total := img.Width * img.Height
	if total == 0 {
		return 0, false
	}
	var hist [8]int
	for i := 0; i+2 < len(img.Pix); i += 3 {
		idx := int(img.Pix[i]>>7)<<2 | int(img.Pix[i+1]>>7)<<1 | int(img.Pix[i+2]>>7)
		hist[idx]++
	}
	max := 0
	for _, c := range hist {
		if c > max {
			max = c
		}
	}
	return float64(max) / float64(total), true
}
