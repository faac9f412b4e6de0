package program

import (
	"fmt"
	"time"
)

// Program is a named offering with a season and a price in minor units.
type Program struct {
	ID         string
	Name       string
	Season     string
	PriceCents int64
	CreatedAt  time.Time
}

func (p Program) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("program id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("program name is required")
	}
	if p.Season == "" {
		return fmt.Errorf("program season is required")
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("program price cannot be negative")
	}

	return nil
}
