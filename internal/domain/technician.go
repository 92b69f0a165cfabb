package domain

import (
	"fmt"
	"time"
)

// Technician identity as seen by the engine; owned by the technician directory.
type Technician struct {
	ID        int64
	CompanyID int64
	Name      string
	Timezone  string // IANA name, empty = service default
}

// Location resolves the technician timezone, falling back to def.
func (t *Technician) Location(def *time.Location) (*time.Location, error) {
	if t.Timezone == "" {
		return def, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("technician id=%d has invalid timezone %q: %w", t.ID, t.Timezone, err)
	}
	return loc, nil
}
