package transport

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseLocation(t *testing.T) {
	cases := []struct {
		input string
		kind  LocationKind
	}{
		{"", LocationAnywhere},
		{"   ", LocationName},
		{"geo-zipcode-8800", LocationTag},
		{"Thalwil", LocationName},
		{"8800", LocationName},
		{"geo-gemeinde-thalwil", LocationName},
	}

	for _, tc := range cases {
		if got := ParseLocation(tc.input).Kind(); got != tc.kind {
			t.Fatalf("ParseLocation(%q): expected kind %d, got %d", tc.input, tc.kind, got)
		}
	}
}

func TestLeavesFlattenNestedLists(t *testing.T) {
	loc := List(Name("Zurich"), List(Tag("geo-zipcode-8800"), Anywhere()), List())

	want := []string{"Zurich", "geo-zipcode-8800", ""}
	if got := loc.Tokens(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(List().Leaves()) != 0 {
		t.Fatal("expected empty list to have no leaves")
	}
}

func TestLocationJSON(t *testing.T) {
	var body struct {
		Location Location `json:"location"`
	}

	if err := json.Unmarshal([]byte(`{"location":"Thalwil"}`), &body); err != nil {
		t.Fatalf("decode string: %v", err)
	}
	if body.Location.Kind() != LocationName || body.Location.Value() != "Thalwil" {
		t.Fatalf("unexpected location %v", body.Location)
	}

	if err := json.Unmarshal([]byte(`{"location":["geo-canton-zurich","8800"]}`), &body); err != nil {
		t.Fatalf("decode array: %v", err)
	}
	leaves := body.Location.Leaves()
	if len(leaves) != 2 || leaves[0].Kind() != LocationTag || leaves[1].Kind() != LocationName {
		t.Fatalf("unexpected leaves %v", leaves)
	}

	if err := json.Unmarshal([]byte(`{"location":null}`), &body); err != nil {
		t.Fatalf("decode null: %v", err)
	}
	if body.Location.Kind() != LocationAnywhere {
		t.Fatalf("expected anywhere, got %v", body.Location)
	}

	if err := json.Unmarshal([]byte(`{"location":42}`), &body); err == nil {
		t.Fatal("expected number to be rejected")
	}
}

func TestLocationJSONReclassifiesTokens(t *testing.T) {
	encoded, err := json.Marshal(List(Tag("x"), Name("geo-zipcode-8800"), List(Name("Thalwil"))))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(encoded) != `["x","geo-zipcode-8800","Thalwil"]` {
		t.Fatalf("unexpected encoding %s", encoded)
	}

	var decoded Location
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	leaves := decoded.Leaves()
	want := []LocationKind{LocationName, LocationTag, LocationName}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %v", len(want), leaves)
	}
	for i, leaf := range leaves {
		if leaf.Kind() != want[i] {
			t.Fatalf("leaf %d (%s): expected kind %d, got %d", i, leaf.Value(), want[i], leaf.Kind())
		}
	}
}
