package coordinator

import (
	"errors"

	"teamboard/internal/domain/entity"
)

// Action names the kind of mutation a Pending performs.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionMove   Action = "move"
)

// Kind is the entity level a mutation targets.
type Kind string

const (
	KindCard Kind = "card"
	KindList Kind = "list"
)

// ErrItemPending is returned when an update or move targets an item whose
// create has not been confirmed yet.
var ErrItemPending = errors.New("item is still being saved")

// Failure is reported when a remote call fails and the local change has
// been rolled back. Message is safe to show to the user.
type Failure struct {
	Action  Action
	Kind    Kind
	ItemID  string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// remoteMessager is implemented by transport errors that carry a message
// produced by the server.
type remoteMessager interface {
	RemoteMessage() string
}

// notFounder is implemented by transport errors for missing resources.
type notFounder interface {
	NotFound() bool
}

func newFailure(p *Pending, err error) *Failure {
	msg := genericMessage(p.Action, p.Kind)
	var rm remoteMessager
	if errors.As(err, &rm) && rm.RemoteMessage() != "" {
		msg = rm.RemoteMessage()
	}
	return &Failure{
		Action:  p.Action,
		Kind:    p.Kind,
		ItemID:  p.ItemID,
		Message: msg,
		Err:     err,
	}
}

func genericMessage(action Action, kind Kind) string {
	return "Failed to " + string(action) + " " + string(kind)
}

func isNotFound(err error) bool {
	var nf notFounder
	if errors.As(err, &nf) {
		return nf.NotFound()
	}
	return entity.IsNotFound(err)
}
