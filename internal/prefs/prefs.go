// Package prefs persists per-user travel preferences inferred from
// conversation text.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Budget tiers. Last match wins; a later message can downgrade the tier.
const (
	BudgetUnset    = ""
	BudgetBudget   = "budget"
	BudgetMidRange = "mid-range"
	BudgetLuxury   = "luxury"
)

// Travel styles.
const (
	StyleUnset     = ""
	StyleSolo      = "solo"
	StyleFamily    = "family"
	StyleCouple    = "couple"
	StyleAdventure = "adventure"
)

// Preferences is a per-user record of inferred travel attributes.
type Preferences struct {
	DestinationsInterested []string  `json:"destinations_interested"`
	BudgetPreference       string    `json:"budget_preference"`
	TravelStyle            string    `json:"travel_style"`
	LastUpdated            time.Time `json:"last_updated"`
	TotalConversations     int       `json:"total_conversations"`
}

// Default returns a zeroed Preferences record.
func Default() Preferences {
	return Preferences{
		DestinationsInterested: []string{},
		LastUpdated:            time.Now(),
	}
}

// Clone returns a deep copy, safe to hand out as a snapshot.
func (p Preferences) Clone() Preferences {
	out := p
	out.DestinationsInterested = make([]string, len(p.DestinationsInterested))
	copy(out.DestinationsInterested, p.DestinationsInterested)
	return out
}

// Store reads and writes one JSON preference file per user.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, "preferences_"+userID+".json")
}

// Load returns the stored preferences for userID, or defaults if the file
// is missing or unreadable. Persistence errors are non-fatal.
func (s *Store) Load(userID string) Preferences {
	p := Default()

	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if p.DestinationsInterested == nil {
		p.DestinationsInterested = []string{}
	}
	return p
}

// Save writes the preferences for userID.
func (s *Store) Save(userID string, p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
