package records

import (
	"encoding/json"
	"fmt"
	"os"

	"taxseva/internal/logging"
)

// Load reads a building collection from a JSON file and builds a store.
// The file is an ordered array of building objects; order is significant
// because Find is first-match-wins.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file %s: %w", path, err)
	}

	var buildings []Building
	if err := json.Unmarshal(data, &buildings); err != nil {
		return nil, fmt.Errorf("failed to parse records file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(buildings))
	for _, b := range buildings {
		if b.BuildingID == "" {
			return nil, fmt.Errorf("records file %s: building with empty buildingId", path)
		}
		if seen[b.BuildingID] {
			return nil, fmt.Errorf("records file %s: duplicate buildingId %s", path, b.BuildingID)
		}
		seen[b.BuildingID] = true
	}

	logging.Store("Loaded %d buildings from %s", len(buildings), path)
	return New(buildings), nil
}
