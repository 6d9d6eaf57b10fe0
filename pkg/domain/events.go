package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// StepEvent is emitted after a transition has been applied.
type StepEvent struct {
	EventBase
	Step       int        `json:"step"`
	Transition Transition `json:"transition"`
	Head       int        `json:"head"`
	TapeLength int        `json:"tape_length"`
}

// HaltEvent is emitted once when a run reaches its halting configuration.
type HaltEvent struct {
	EventBase
	FinalState string `json:"final_state"`
	Accepted   bool   `json:"accepted"`
	Steps      int    `json:"steps"`
	TapeLength int    `json:"tape_length"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *HaltEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnHalt: func(ctx context.Context, e *HaltEvent) {
			if h.OnHalt != nil {
				h.OnHalt(ctx, e)
			}
			if other.OnHalt != nil {
				other.OnHalt(ctx, e)
			}
		},
	}
}
