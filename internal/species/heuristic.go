package species

import "github.com/ecoally/ecolens/internal/imaging"

// HeuristicIdentify guesses a species from mean channel intensities. The
// ladder is deliberately coarse: it is a last-resort signal for when the
// external lookup is unavailable or unconvinced, not a real classifier.
// Thresholds and ordering are fixed; the ladder is total over valid rasters
// and never fails.
func HeuristicIdentify(img *imaging.Image) Identification {
	r, g, b := img.MeanRGB()
	greenRatio := g / (r + 1e-5)
	warmFlower := r > g && r > b && r > 120

	switch {
	case greenRatio > 1.3 && g > 80:
		return Identification{ScientificName: "Azadirachta indica", CommonName: "Neem Tree", Confidence: 0.35, Source: SourceHeuristic}
	case greenRatio > 1.15:
		return Identification{ScientificName: "Ocimum tenuiflorum", CommonName: "Tulsi", Confidence: 0.30, Source: SourceHeuristic}
	case warmFlower && r > b*1.3:
		return Identification{ScientificName: "Hibiscus rosa-sinensis", CommonName: "Hibiscus", Confidence: 0.25, Source: SourceHeuristic}
	case warmFlower:
		return Identification{ScientificName: "Tagetes", CommonName: "Marigold", Confidence: 0.25, Source: SourceHeuristic}
	default:
		return Identification{ScientificName: "Unknown", CommonName: "Unknown Plant", Confidence: 0.10, Source: SourceHeuristic}
	}
}
