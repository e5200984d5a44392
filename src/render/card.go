package render

import (
	"strconv"
	"strings"

	"matchafinder/src/types"
)

const (
	placeholderNA      = "N/A"
	placeholderAddress = "Address not available"
	placeholderNone    = "Not specified"
)

// Card is the display form of one place. Every optional field has already
// been substituted with its placeholder, so the template stays dumb.
type Card struct {
	Name     string
	Website  string
	Rating   string
	Reviews  string
	Address  string
	Evidence string
}

// BuildCards maps places to cards one to one, preserving input order.
func BuildCards(places []types.Place) []Card {
	cards := make([]Card, 0, len(places))
	for _, p := range places {
		cards = append(cards, buildCard(p))
	}
	return cards
}

func buildCard(p types.Place) Card {
	c := Card{
		Name:     p.Name,
		Rating:   placeholderNA,
		Reviews:  placeholderNA,
		Address:  placeholderAddress,
		Evidence: placeholderNone,
	}

	if p.Website != nil && *p.Website != "" {
		c.Website = *p.Website
	}
	if p.Address != nil && *p.Address != "" {
		c.Address = *p.Address
	}
	if p.Details != nil {
		if p.Details.Rating != nil {
			c.Rating = strconv.FormatFloat(*p.Details.Rating, 'f', -1, 64)
		}
		if p.Details.UserRatingsTotal != nil {
			c.Reviews = strconv.Itoa(*p.Details.UserRatingsTotal)
		}
	}
	if len(p.MatchaEvidence) > 0 {
		c.Evidence = strings.Join(p.MatchaEvidence, ", ")
	}

	return c
}
