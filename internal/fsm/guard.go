// Package fsm validates property status transitions against the transition
// table declared in internal/models.
package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"real-estate-backend/internal/models"
)

// events converts models.StatusTransitions into looplab/fsm EventDesc form,
// consolidating transitions that share event and destination.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range models.StatusTransitions {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// ErrInvalidTransition is returned when the event is not allowed from the
// current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Guard applies status events. looplab/fsm tracks current state internally,
// so a short-lived machine is built per Apply call.
type Guard struct{}

// NewGuard creates a transition guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Apply checks the event against the current status and returns the
// destination status, or ErrInvalidTransition.
func (g *Guard) Apply(ctx context.Context, current models.PropertyStatus, event models.StatusEvent) (models.PropertyStatus, error) {
	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", ErrInvalidTransition
		}
		return "", err
	}

	return models.PropertyStatus(machine.Current()), nil
}
