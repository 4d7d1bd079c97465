package entity

import (
	"math"
	"time"
)

// ChecklistItem is a single entry of a card checklist
type ChecklistItem struct {
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Card represents a work item within a list
type Card struct {
	id          string
	listID      string
	title       string
	description string
	priority    Priority
	checklist   []ChecklistItem
	assignees   []string
	position    float64
	createdAt   time.Time
	modifiedAt  time.Time
}

// NewCard creates a new Card entity
func NewCard(id, listID, title string, position float64) (*Card, error) {
	if id == "" {
		return nil, ErrInvalidCardID
	}
	if title == "" {
		return nil, ErrEmptyCardName
	}
	if !isFinite(position) {
		return nil, ErrInvalidPosition
	}

	now := time.Now().UTC()
	return &Card{
		id:         id,
		listID:     listID,
		title:      title,
		priority:   PriorityNone,
		checklist:  make([]ChecklistItem, 0),
		assignees:  make([]string, 0),
		position:   position,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

// ID returns the card ID
func (c *Card) ID() string {
	return c.id
}

// ListID returns the ID of the list holding the card
func (c *Card) ListID() string {
	return c.listID
}

// Title returns the card title
func (c *Card) Title() string {
	return c.title
}

// Description returns the card description
func (c *Card) Description() string {
	return c.description
}

// Priority returns the card priority
func (c *Card) Priority() Priority {
	return c.priority
}

// Position returns the order key of the card within its list
func (c *Card) Position() float64 {
	return c.position
}

// Checklist returns a copy of the checklist
func (c *Card) Checklist() []ChecklistItem {
	out := make([]ChecklistItem, len(c.checklist))
	copy(out, c.checklist)
	return out
}

// Assignees returns a copy of the assignee ids
func (c *Card) Assignees() []string {
	out := make([]string, len(c.assignees))
	copy(out, c.assignees)
	return out
}

// CreatedAt returns when the card was created
func (c *Card) CreatedAt() time.Time {
	return c.createdAt
}

// ModifiedAt returns when the card was last modified
func (c *Card) ModifiedAt() time.Time {
	return c.modifiedAt
}

// UpdateTitle updates the card title
func (c *Card) UpdateTitle(title string) error {
	if title == "" {
		return ErrEmptyCardName
	}
	c.title = title
	c.touch()
	return nil
}

// UpdateDescription updates the card description
func (c *Card) UpdateDescription(description string) {
	c.description = description
	c.touch()
}

// UpdatePriority updates the card priority
func (c *Card) UpdatePriority(priority Priority) error {
	if !priority.IsValid() {
		return ErrInvalidPriority
	}
	c.priority = priority
	c.touch()
	return nil
}

// SetChecklist replaces the checklist
func (c *Card) SetChecklist(items []ChecklistItem) {
	c.checklist = make([]ChecklistItem, len(items))
	copy(c.checklist, items)
	c.touch()
}

// SetAssignees replaces the assignees, dropping duplicates
func (c *Card) SetAssignees(assignees []string) {
	seen := make(map[string]bool, len(assignees))
	c.assignees = make([]string, 0, len(assignees))
	for _, a := range assignees {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		c.assignees = append(c.assignees, a)
	}
	c.touch()
}

// Place sets the owning list and the position together. It is the only way
// either value changes after construction.
func (c *Card) Place(listID string, position float64) error {
	if !isFinite(position) {
		return ErrInvalidPosition
	}
	c.listID = listID
	c.position = position
	c.touch()
	return nil
}

// RestoreTimestamps sets timestamps loaded from storage
func (c *Card) RestoreTimestamps(createdAt, modifiedAt time.Time) {
	if !createdAt.IsZero() {
		c.createdAt = createdAt
	}
	if !modifiedAt.IsZero() {
		c.modifiedAt = modifiedAt
	}
}

func (c *Card) touch() {
	c.modifiedAt = time.Now().UTC()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
