package records

import (
	"fmt"
	"strings"
	"sync"

	"taxseva/internal/logging"
)

// Criteria is a partial search input. Matching is OR across provided fields:
// any single non-empty field that equals the record's value qualifies.
type Criteria struct {
	Mobile     string
	Aadhaar    string
	BuildingID string
}

// normalized returns the criteria with surrounding whitespace stripped.
func (c Criteria) normalized() Criteria {
	return Criteria{
		Mobile:     strings.TrimSpace(c.Mobile),
		Aadhaar:    strings.TrimSpace(c.Aadhaar),
		BuildingID: strings.TrimSpace(c.BuildingID),
	}
}

// IsEmpty reports whether no search field was provided.
func (c Criteria) IsEmpty() bool {
	n := c.normalized()
	return n.Mobile == "" && n.Aadhaar == "" && n.BuildingID == ""
}

// matches reports whether any provided field equals the building's value.
func (c Criteria) matches(b *Building) bool {
	if c.Mobile != "" && b.MobileNumber == c.Mobile {
		return true
	}
	if c.Aadhaar != "" && b.AadhaarNumber == c.Aadhaar {
		return true
	}
	if c.BuildingID != "" && b.BuildingID == c.BuildingID {
		return true
	}
	return false
}

// Store holds the building records loaded once at startup. It is read-only
// after load except for MarkPaid, the single write path. Accessors hand out
// deep copies so the UI never observes a torn tax slice.
type Store struct {
	mu        sync.RWMutex
	buildings []Building
}

// New creates a store over the given records, preserving their order.
func New(buildings []Building) *Store {
	s := &Store{buildings: make([]Building, len(buildings))}
	copy(s.buildings, buildings)
	logging.Store("Record store created with %d buildings", len(buildings))
	return s
}

// Len returns the number of building records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buildings)
}

// Find resolves search criteria to at most one building: the first record in
// store order where any provided field matches. Fails with a ValidationError
// when every field is empty, ErrNotFound when nothing matches, and
// ErrEmptyTaxHistory when the match has no tax records.
func (s *Store) Find(c Criteria) (Building, error) {
	c = c.normalized()
	if c.IsEmpty() {
		return Building{}, NewValidationError("no search field provided")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.buildings {
		if !c.matches(&s.buildings[i]) {
			continue
		}
		if len(s.buildings[i].Taxes) == 0 {
			logging.Store("Find matched %s but tax history is empty", s.buildings[i].BuildingID)
			return Building{}, ErrEmptyTaxHistory
		}
		logging.StoreDebug("Find matched building %s", s.buildings[i].BuildingID)
		return s.buildings[i].clone(), nil
	}
	return Building{}, ErrNotFound
}

// Building looks a record up by id. The second return is false when the id
// is unknown.
func (s *Store) Building(id string) (Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.buildings {
		if s.buildings[i].BuildingID == id {
			return s.buildings[i].clone(), true
		}
	}
	return Building{}, false
}

// MarkPaid flips one tax record PENDING→PAID by replacing that record in the
// building's tax sequence; all other records are untouched. This is the only
// mutation the store supports, and only a successful payment calls it.
func (s *Store) MarkPaid(buildingID, taxID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.buildings {
		if s.buildings[i].BuildingID != buildingID {
			continue
		}
		for j := range s.buildings[i].Taxes {
			if s.buildings[i].Taxes[j].ID != taxID {
				continue
			}
			updated := s.buildings[i].Taxes[j]
			updated.Status = StatusPaid
			s.buildings[i].Taxes[j] = updated
			logging.Store("Marked tax %s on building %s as PAID", taxID, buildingID)
			return nil
		}
		return fmt.Errorf("tax %s not found on building %s: %w", taxID, buildingID, ErrNotFound)
	}
	return fmt.Errorf("building %s: %w", buildingID, ErrNotFound)
}
