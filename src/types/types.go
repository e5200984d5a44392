package types

// Place is one matcha cafe record from the dataset. Everything except the
// name is optional in the source data, so optional fields are pointers and
// default substitution happens centrally in the card builder.
type Place struct {
	Name           string   `json:"name"`
	Address        *string  `json:"address,omitempty"`
	Website        *string  `json:"website,omitempty"`
	PlaceID        string   `json:"place_id,omitempty"`
	HasMatcha      bool     `json:"has_matcha"`
	MatchaEvidence []string `json:"matcha_evidence,omitempty"`
	Details        *Details `json:"details,omitempty"`
}

// Details carries the upstream rating information for a place.
type Details struct {
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
}

type DataStore interface {
	GetPlaces(limit, offset int) ([]Place, int, error)
	GetTopRated(limit int) ([]Place, error)
}
