package identity

import (
	"slices"
	"strings"
	"unicode"
)

// PlayerListEntry is one row of the canonical player id list.
type PlayerListEntry struct {
	FirstName  string
	SecondName string
	ID         int
}

// PlayerList resolves canonical ids by full player name. One name may carry
// several ids when distinct players share it.
type PlayerList struct {
	byName map[string][]int
}

func NewPlayerList(entries []PlayerListEntry) PlayerList {
	byName := make(map[string][]int, len(entries))
	for _, entry := range entries {
		if entry.ID <= 0 {
			continue
		}
		key := NormalizeName(entry.FirstName + " " + entry.SecondName)
		if key == "" {
			continue
		}
		if !slices.Contains(byName[key], entry.ID) {
			byName[key] = append(byName[key], entry.ID)
		}
	}
	for _, ids := range byName {
		slices.Sort(ids)
	}

	return PlayerList{byName: byName}
}

// Lookup returns the id listed for name. It fails when name is unknown or shared by
// more than one player.
func (l PlayerList) Lookup(name string) (int, bool) {
	ids := l.byName[NormalizeName(name)]
	if len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}

// IDs returns every id listed for name in ascending order.
func (l PlayerList) IDs(name string) []int {
	return slices.Clone(l.byName[NormalizeName(name)])
}

// Resolve picks the canonical id for a source entry. The entry's own id is kept
// when the list confirms it or cannot disambiguate; it is replaced only when the
// name maps to exactly one other id.
func (l PlayerList) Resolve(entry Entry) (id int, overridden bool) {
	ids := l.byName[NormalizeName(entry.Name())]
	if len(ids) != 1 || ids[0] == entry.ID {
		return entry.ID, false
	}
	return ids[0], true
}

func (l PlayerList) Len() int {
	return len(l.byName)
}

// NormalizeName lowercases, treats underscores as spaces and collapses whitespace.
func NormalizeName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
