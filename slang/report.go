package slang

import (
	"fmt"

	"github.com/nocap-js/nocap/parser"
)

// Outcome is the result of consulting the catalog about one node.
type Outcome int

const (
	// NotApplicable means the node names a catalog entry in a position where
	// no rule applies, such as an alias used as a property name.
	NotApplicable Outcome = iota
	// Matched means the node was rewritten.
	Matched
	// ShapeMismatch means a call rule was named but its arguments or position
	// did not fit, so the call was left as written.
	ShapeMismatch
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case ShapeMismatch:
		return "shape mismatch"
	default:
		return "not applicable"
	}
}

// Event records one catalog decision.
type Event struct {
	Rule    string
	Outcome Outcome
	Pos     parser.Position
	Reason  string // why a shape mismatch was rejected
	Folded  int    // statements consumed by a sequence rule
}

func (e Event) String() string {
	msg := fmt.Sprintf("%s: %s", e.Rule, e.Outcome)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

// Report lists the decisions of one rewrite pass in traversal order.
type Report struct {
	Events []Event
}

func (r *Report) add(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns the number of events with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, e := range r.Events {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Filter returns the events with the given outcome.
func (r *Report) Filter(outcome Outcome) []Event {
	var events []Event
	for _, e := range r.Events {
		if e.Outcome == outcome {
			events = append(events, e)
		}
	}
	return events
}

// Changed reports whether any rule fired.
func (r *Report) Changed() bool {
	return r.Count(Matched) > 0
}
