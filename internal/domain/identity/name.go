package identity

import (
	"regexp"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnexpectedEntryName is returned when a player directory or file name does not
// follow the `{token}+_{digits}` grammar.
var ErrUnexpectedEntryName = crerr.New("unexpected player entry name")

var entryNameRegex = regexp.MustCompile(`^([^_]+(?:_[^_]+)*)_([0-9]+)$`)

// Entry is the player identity encoded in a source directory or file name.
type Entry struct {
	Tokens []string
	ID     int
}

// Name joins the name tokens with single spaces.
func (e Entry) Name() string {
	return strings.Join(e.Tokens, " ")
}

// ParseEntryName parses names such as "Mohamed_Salah_233" or "Mohamed_Salah_1250.csv"
// (the extension is stripped by the caller).
func ParseEntryName(raw string) (Entry, error) {
	name := strings.TrimSpace(raw)
	match := entryNameRegex.FindStringSubmatch(name)
	if match == nil {
		return Entry{}, crerr.Wrapf(ErrUnexpectedEntryName, "parse %q", raw)
	}

	id, err := strconv.Atoi(match[2])
	if err != nil {
		return Entry{}, crerr.Wrapf(ErrUnexpectedEntryName, "parse id in %q: %v", raw, err)
	}

	return Entry{
		Tokens: strings.Split(match[1], "_"),
		ID:     id,
	}, nil
}
