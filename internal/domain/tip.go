// Package domain contains core business entities and rules.
package domain

// Tip represents a single piece of financial advice.
// This is a domain entity - it has no knowledge of external systems.
type Tip struct {
	// ID is the store-assigned identifier. It is unique, monotonically
	// increasing, and never reused once assigned.
	ID int64

	// Text is the tip content. A persisted Tip always has non-empty Text.
	Text string
}
