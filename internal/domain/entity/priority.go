package entity

import "strings"

// Priority is the urgency of a card
type Priority string

const (
	PriorityNone     Priority = "none"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority converts a string into a Priority. An empty string maps to
// PriorityNone.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNone, nil
	}
	if !p.IsValid() {
		return PriorityNone, ErrInvalidPriority
	}
	return p, nil
}

// IsValid checks if the priority is one of the known levels
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}
