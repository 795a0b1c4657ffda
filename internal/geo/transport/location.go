package transport

import (
	"encoding/json"
	"errors"
	"strings"

	"homegate_search/platform/validator"
)

// LocationKind discriminates the Location union.
type LocationKind int

const (
	// LocationAnywhere means no restriction; it resolves to the country tag.
	LocationAnywhere LocationKind = iota
	// LocationTag is a literal geo tag used as-is.
	LocationTag
	// LocationName is a free-text place name or postal code that needs a lookup.
	LocationName
	// LocationList combines several locations; their tags are concatenated.
	LocationList
)

// Location is where to search: anywhere, a literal tag, a name, or a list of those.
// The zero value is Anywhere.
type Location struct {
	kind  LocationKind
	value string
	items []Location
}

// Anywhere returns the unrestricted location.
func Anywhere() Location {
	return Location{kind: LocationAnywhere}
}

// Tag returns a location that is already a geo tag.
func Tag(tag string) Location {
	return Location{kind: LocationTag, value: tag}
}

// Name returns a location that must be looked up.
func Name(name string) Location {
	return Location{kind: LocationName, value: name}
}

// List combines several locations.
func List(items ...Location) Location {
	return Location{kind: LocationList, items: append([]Location(nil), items...)}
}

// ParseLocation classifies a raw string. Only the empty string means
// Anywhere; a blank string stays a Name and fails resolution.
func ParseLocation(raw string) Location {
	trimmed := strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Anywhere()
	case trimmed == "":
		return Name(raw)
	case validator.IsGeoTag(trimmed):
		return Tag(trimmed)
	default:
		return Name(trimmed)
	}
}

// ParseLocations classifies every raw string and combines them in a List.
func ParseLocations(raw ...string) Location {
	items := make([]Location, 0, len(raw))
	for _, r := range raw {
		items = append(items, ParseLocation(r))
	}
	return List(items...)
}

func (l Location) Kind() LocationKind { return l.kind }
func (l Location) Value() string      { return l.value }

// Leaves flattens nested lists into the non-list locations, in input order.
// An empty list has no leaves.
func (l Location) Leaves() []Location {
	if l.kind != LocationList {
		return []Location{l}
	}
	leaves := make([]Location, 0, len(l.items))
	for _, item := range l.items {
		leaves = append(leaves, item.Leaves()...)
	}
	return leaves
}

// Tokens returns the raw string of every leaf; Anywhere yields "".
func (l Location) Tokens() []string {
	leaves := l.Leaves()
	tokens := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		tokens = append(tokens, leaf.value)
	}
	return tokens
}

func (l Location) String() string {
	switch l.kind {
	case LocationAnywhere:
		return "anywhere"
	case LocationList:
		return "[" + strings.Join(l.Tokens(), ", ") + "]"
	default:
		return l.value
	}
}

// UnmarshalJSON accepts null, a string or an array of strings.
func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = Anywhere()
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = ParseLocation(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("location must be a string or an array of strings")
	}
	*l = ParseLocations(many...)
	return nil
}

// MarshalJSON writes leaves back as a string or an array of strings.
// Kinds are not encoded, so UnmarshalJSON reclassifies every token with
// ParseLocation: Tag("x") comes back as Name("x"), Name("geo-zipcode-8800")
// comes back as a Tag, and nested lists come back flattened.
func (l Location) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case LocationAnywhere:
		return []byte("null"), nil
	case LocationList:
		return json.Marshal(l.Tokens())
	default:
		return json.Marshal(l.value)
	}
}
