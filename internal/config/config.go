// Package config loads the compiled-in quiz deck and the host settings.
package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/position"
	"github.com/f3rmion/closer/internal/quiz"
	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeck []byte

// Answer count limits per question.
const (
	MinAnswers = 2
	MaxAnswers = 5
)

// ErrInvalidDeck is returned when a deck fails validation.
var ErrInvalidDeck = errors.New("invalid deck")

// PlacesConfig holds the named coordinates of the map.
type PlacesConfig struct {
	Connecticut geo.Coordinate `yaml:"connecticut"`
	Nepal       geo.Coordinate `yaml:"nepal"`
	Alaska      geo.Coordinate `yaml:"alaska"`
	NoPathMe    geo.Coordinate `yaml:"no_path_me"`
}

// Deck is the full quiz content.
type Deck struct {
	Map       PlacesConfig    `yaml:"places"`
	Questions []quiz.Question `yaml:"questions"`
}

// Places builds the position model's reference points.
func (d *Deck) Places() position.Places {
	p := d.Map
	return position.NewPlaces(p.Connecticut, p.Nepal, p.Alaska, p.NoPathMe)
}

// Validate checks every question has 2-5 answers and a correct index in range,
// and that every place is set with distinct start locations.
func (d *Deck) Validate() error {
	if len(d.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidDeck)
	}
	for i, q := range d.Questions {
		if q.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidDeck, i+1)
		}
		if n := len(q.Answers); n < MinAnswers || n > MaxAnswers {
			return fmt.Errorf("%w: question %d has %d answers, want %d-%d",
				ErrInvalidDeck, i+1, n, MinAnswers, MaxAnswers)
		}
		if q.Correct < 0 || q.Correct >= len(q.Answers) {
			return fmt.Errorf("%w: question %d correct index %d out of range",
				ErrInvalidDeck, i+1, q.Correct)
		}
	}

	p := d.Map
	for _, place := range []struct {
		name string
		c    geo.Coordinate
	}{
		{"connecticut", p.Connecticut},
		{"nepal", p.Nepal},
		{"alaska", p.Alaska},
		{"no_path_me", p.NoPathMe},
	} {
		if place.c == (geo.Coordinate{}) {
			return fmt.Errorf("%w: place %s is missing", ErrInvalidDeck, place.name)
		}
	}
	if p.Connecticut == p.Nepal {
		return fmt.Errorf("%w: connecticut and nepal are the same place", ErrInvalidDeck)
	}
	return nil
}

// ParseDeck decodes and validates a YAML deck.
func ParseDeck(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// DefaultDeck returns the deck compiled into the binary.
func DefaultDeck() (*Deck, error) {
	return ParseDeck(defaultDeck)
}
