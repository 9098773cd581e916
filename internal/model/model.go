package model

import (
	"time"
)

// Model holds the columns shared by user-facing rows. Metadata is raw JSONB.
type Model struct {
	ID        string
	Metadata  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
