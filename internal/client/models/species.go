// Package models defines the data exchanged with the PohonKu backend and the
// values the client keeps locally.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary or numeric value that the backend sends either as a
// JSON number or as a decimal string ("150000.00").
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}

// Species is a tree species offered for adoption. ID is opaque and is the
// only identity; responses are never re-sorted by the client.
type Species struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	LatinName            string   `json:"latinName"`
	Category             string   `json:"category"`
	BasePrice            Amount   `json:"basePrice"`
	MainImageURL         string   `json:"mainImageUrl"`
	Description          string   `json:"description,omitempty"`
	CarbonAbsorptionRate *float64 `json:"carbonAbsorptionRate,omitempty"`
	AvailableStock       *int     `json:"availableStock,omitempty"`
	StoryContent         string   `json:"storyContent,omitempty"`
}

// UnmarshalJSON also accepts the "availabelStock" spelling some backend
// versions emit.
func (s *Species) UnmarshalJSON(b []byte) error {
	type Alias Species
	aux := struct {
		*Alias
		Misspelt *int `json:"availabelStock"`
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if s.AvailableStock == nil && aux.Misspelt != nil {
		s.AvailableStock = aux.Misspelt
	}
	return nil
}
