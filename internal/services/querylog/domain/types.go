// Package domain holds query log records and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded search
type Entry struct {
	ID       uuid.UUID
	Content  string
	Strict   bool
	Terms    []string
	Videos   int
	Segments int
	At       time.Time
}

// Popular is a query text and mode with how often it was searched
type Popular struct {
	Content string
	Strict  bool
	Count   int
}
