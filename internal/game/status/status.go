package status

import "github.com/udisondev/rpgcore/internal/timer"

// Application is one timed contribution to a Status.
type Application struct {
	Magnitude int32
	ExpiresAt uint64
}

type application struct {
	Application
	handle timer.Handle
}

// Status is the live state of one kind on one entity.
type Status struct {
	kind  Kind
	apps  []*application
	stack int32

	// recompute is the pending deferred max recompute for non-cumulative kinds.
	recompute timer.Handle
}

// Kind returns the status kind.
func (s *Status) Kind() Kind { return s.kind }

// StackAmount returns the derived stack amount.
func (s *Status) StackAmount() int32 { return s.stack }

// Applications returns a copy of the live applications in apply order.
func (s *Status) Applications() []Application {
	out := make([]Application, len(s.apps))
	for i, a := range s.apps {
		out[i] = a.Application
	}
	return out
}

func (s *Status) sum() int32 {
	var total int32
	for _, a := range s.apps {
		total += a.Magnitude
	}
	return total
}

func (s *Status) max() int32 {
	var highest int32
	for _, a := range s.apps {
		if a.Magnitude > highest {
			highest = a.Magnitude
		}
	}
	return highest
}
