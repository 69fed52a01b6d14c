package labels

import "strings"

// Canonical activity labels.
const (
	Grazing      = "PASTOREO"
	Rumination   = "RUMIA"
	Segmentation = "SEGMENTACION"

	// Silence is the default filler label for RemoveSilences.
	Silence = "SILENCIO"
)

// aliases maps normalized free-text labels to their canonical activity.
var aliases = map[string]string{
	"RUMIA PASTURA":    Rumination,
	"RUMIA PASTOREO":   Rumination,
	"RUMIA EN PASTURA": Rumination,
	"RUMINATION":       Rumination,
	"R":                Rumination,
	"PASTURA":          Grazing,
	"GRAZING":          Grazing,
	"P":                Grazing,
}

// segmentation collapses every activity into a single in-segment label.
var segmentation = map[string]string{
	Rumination: Segmentation,
	Grazing:    Segmentation,
	"REGULAR":  Segmentation,
}

// Clean trims surrounding whitespace and upper-cases a raw label.
func Clean(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Canonical resolves a raw label to its canonical name. Labels without an
// alias are returned cleaned but otherwise unchanged.
func Canonical(raw string) string {
	l := Clean(raw)
	if c, ok := aliases[l]; ok {
		return c
	}
	return l
}

func toSegmentation(label string) string {
	if s, ok := segmentation[label]; ok {
		return s
	}
	return label
}

// OfInterest reports whether a canonical label is kept by the loaders.
func OfInterest(label string, segmentationMode bool) bool {
	if segmentationMode {
		return label == Segmentation
	}
	return label == Grazing || label == Rumination
}
