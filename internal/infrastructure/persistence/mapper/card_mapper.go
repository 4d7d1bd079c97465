package mapper

import (
	"fmt"
	"time"

	"teamboard/internal/domain/entity"
)

// CardRecord represents card storage format. Description is the markdown
// body in the filesystem layout.
type CardRecord struct {
	ID          string                 `yaml:"id"`
	ListID      string                 `yaml:"-"`
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"-"`
	Priority    string                 `yaml:"priority"`
	Position    float64                `yaml:"position"`
	Checklist   []entity.ChecklistItem `yaml:"checklist,omitempty"`
	Assignees   []string               `yaml:"assignees,omitempty"`
	Created     time.Time              `yaml:"created"`
	Modified    time.Time              `yaml:"modified"`
}

// CardToRecord converts a Card entity to storage format
func CardToRecord(card *entity.Card) CardRecord {
	return CardRecord{
		ID:          card.ID(),
		ListID:      card.ListID(),
		Title:       card.Title(),
		Description: card.Description(),
		Priority:    card.Priority().String(),
		Position:    card.Position(),
		Checklist:   card.Checklist(),
		Assignees:   card.Assignees(),
		Created:     card.CreatedAt(),
		Modified:    card.ModifiedAt(),
	}
}

// CardFromRecord converts storage format to a Card entity
func CardFromRecord(rec CardRecord) (*entity.Card, error) {
	card, err := entity.NewCard(rec.ID, rec.ListID, rec.Title, rec.Position)
	if err != nil {
		return nil, err
	}

	priority, err := entity.ParsePriority(rec.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority: %w", err)
	}
	if err := card.UpdatePriority(priority); err != nil {
		return nil, err
	}
	card.UpdateDescription(rec.Description)
	card.SetChecklist(rec.Checklist)
	card.SetAssignees(rec.Assignees)
	card.RestoreTimestamps(rec.Created, rec.Modified)
	return card, nil
}
