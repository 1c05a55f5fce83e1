package species

import "context"

// Source tags where an identification came from.
type Source string

const (
	SourceLookup    Source = "lookup"
	SourceHeuristic Source = "heuristic"
	SourceNone      Source = "none"
)

// Identification is a best-guess species for a plant raster. CommonName may
// equal ScientificName when nothing friendlier resolves.
type Identification struct {
	ScientificName string  `json:"scientific_name"`
	CommonName     string  `json:"common_name"`
	Confidence     float64 `json:"confidence"`
	Source         Source  `json:"source"`
}

// Match is one ranked result from the external lookup.
type Match struct {
	ScientificName string
	CommonNames    []string
	Score          float64
}

// Lookup is the external species-identification collaborator: JPEG bytes in,
// ranked matches out.
type Lookup interface {
	Identify(ctx context.Context, jpegData []byte) ([]Match, error)
}
