package events

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"eventTicketing/internal/models"
)

//go:embed seed/events.json
var seedJSON []byte

// DefaultSeed decodes the bundled seed dataset.
func DefaultSeed() ([]models.Event, error) {
	return decode(seedJSON)
}

// LoadSeed reads a seed dataset from a JSON file.
func LoadSeed(path string) ([]models.Event, error) {
	const op = "store.events.LoadSeed"

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func decode(b []byte) ([]models.Event, error) {
	var events []models.Event
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}
