package mapper

import (
	"time"

	"teamboard/internal/domain/entity"
)

// ListRecord represents list storage format
type ListRecord struct {
	ID       string    `yaml:"id" db:"id"`
	BoardID  string    `yaml:"-" db:"board_id"`
	Name     string    `yaml:"name" db:"name"`
	Position float64   `yaml:"position" db:"position"`
	Created  time.Time `yaml:"created" db:"created_at"`
}

// ListToRecord converts a List entity to storage format
func ListToRecord(list *entity.List) ListRecord {
	return ListRecord{
		ID:       list.ID(),
		BoardID:  list.BoardID(),
		Name:     list.Name(),
		Position: list.Position(),
		Created:  list.CreatedAt(),
	}
}

// ListFromRecord converts storage format to a List entity without cards
func ListFromRecord(rec ListRecord) (*entity.List, error) {
	list, err := entity.NewList(rec.ID, rec.BoardID, rec.Name, rec.Position)
	if err != nil {
		return nil, err
	}
	list.RestoreCreatedAt(rec.Created)
	return list, nil
}
