package search

import "strconv"

// SearchType selects which song field participates in similarity scoring,
// or requests an exact-id lookup that bypasses scoring entirely.
type SearchType int

const (
	// TypeDefault scores against the combined "title artist album" field.
	TypeDefault SearchType = iota
	// TypeTitle scores against the song title.
	TypeTitle
	// TypeUploader scores against the uploader name.
	TypeUploader
	// TypeUser targets user entities, which live outside the catalog; for
	// song searches it behaves like TypeDefault.
	TypeUser
	// TypeID looks up a song by exact id, unscored.
	TypeID
)

func (t SearchType) String() string {
	switch t {
	case TypeTitle:
		return "title"
	case TypeUploader:
		return "uploader"
	case TypeUser:
		return "user"
	case TypeID:
		return "id"
	default:
		return "default"
	}
}

// ParseSearchType maps a search-type tag to a SearchType. Unknown tags are
// not an error; they fall back to TypeDefault (lenient read path).
func ParseSearchType(s string) SearchType {
	switch s {
	case "title":
		return TypeTitle
	case "uploader":
		return TypeUploader
	case "user":
		return TypeUser
	case "id":
		return TypeID
	default:
		return TypeDefault
	}
}

// ParseLimit parses a result limit, falling back to def when the value is
// missing or unparsable, and capping at max.
func ParseLimit(s string, def, max int) int {
	limit := def
	if s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}
