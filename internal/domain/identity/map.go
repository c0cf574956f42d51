package identity

// Link is one row of the secondary-to-canonical reference table.
// CanonicalID is zero when the reference row has no canonical id.
type Link struct {
	SourceID      int
	SourceName    string
	CanonicalID   int
	CanonicalName string
}

// Map translates secondary-source player ids into canonical ids.
// It is immutable once built.
type Map struct {
	bySource map[int]int
}

// NewMap builds the identity map. Links without a canonical id are excluded; when the
// same source id appears twice the later link wins.
func NewMap(links []Link) Map {
	bySource := make(map[int]int, len(links))
	for _, link := range links {
		if link.SourceID <= 0 || link.CanonicalID <= 0 {
			continue
		}
		bySource[link.SourceID] = link.CanonicalID
	}

	return Map{bySource: bySource}
}

func (m Map) Lookup(sourceID int) (int, bool) {
	id, ok := m.bySource[sourceID]
	return id, ok
}

func (m Map) Len() int {
	return len(m.bySource)
}
