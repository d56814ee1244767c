package model

import "time"

// Category represents a named grouping for transactions. Names are stored
// lowercase and are unique under case-insensitive comparison.
type Category struct {
	CreatedAt time.Time
	Name      string
	ID        int64
}
