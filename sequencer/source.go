package sequencer

import "drumdrill/pattern"

// SourceKind says which view owns the sequence being played.
type SourceKind string

const (
	SourceCatalog SourceKind = "catalog"
	SourceCustom  SourceKind = "custom"
)

// Source identifies the rendered instance a playback belongs to, so
// highlights land on that instance only.
type Source struct {
	Kind SourceKind
	ID   string
}

// CustomSource is the fixed source of the custom pattern builder.
var CustomSource = Source{Kind: SourceCustom, ID: "custom"}

// CatalogSource is the source of the catalog row for key.
func CatalogSource(key pattern.Key) Source {
	return Source{Kind: SourceCatalog, ID: string(key)}
}

// AddressID is the notation address id the source renders under. Views and
// the scheduler must both use it.
func (s Source) AddressID() string {
	switch {
	case s.ID == "":
		return string(s.Kind)
	case s.Kind == SourceCustom:
		return s.ID
	}
	return string(s.Kind) + "-" + s.ID
}
