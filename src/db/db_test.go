package db

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"matchafinder/src/types"
)

func ptr[T any](v T) *T { return &v }

func TestReadPlaces(t *testing.T) {
	places, err := ReadPlaces("testdata/places.json")
	if err != nil {
		t.Fatalf("ReadPlaces: %v", err)
	}

	want := []types.Place{
		{
			Name:           "Tombo Matcha Bar",
			Address:        ptr("29 Thurloe Pl, London"),
			Website:        ptr("https://www.tombocafe.com/"),
			PlaceID:        "tombo-1",
			HasMatcha:      true,
			MatchaEvidence: []string{"Found on menu (website scan)"},
			Details:        &types.Details{Rating: ptr(4.5), UserRatingsTotal: ptr(1287)},
		},
		{
			Name: "Bare Minimum Cafe",
		},
	}
	if diff := cmp.Diff(want, places); diff != "" {
		t.Errorf("places mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPlacesMissingFile(t *testing.T) {
	if _, err := ReadPlaces("testdata/does_not_exist.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadPlacesMalformed(t *testing.T) {
	if _, err := ReadPlaces("testdata/malformed.json"); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestDocID(t *testing.T) {
	withID := types.Place{Name: "X", PlaceID: "abc123"}
	if got := DocID(withID); got != "abc123" {
		t.Errorf("DocID: got %q, want %q", got, "abc123")
	}

	withoutID := types.Place{Name: "Y"}
	first := DocID(withoutID)
	second := DocID(withoutID)
	if first == "" || second == "" {
		t.Fatal("generated ID is empty")
	}
	if first == second {
		t.Errorf("generated IDs should differ, both %q", first)
	}
}
