// Package fault defines the error taxonomy shared by all transaction services.
// Every failure surfaced to a caller is either a Fault (fatal — the operation
// did not happen) or a Warning (a best-effort step failed but the operation
// itself succeeded).
package fault

import (
	"fmt"
	"strings"
)

// Kind classifies a fatal failure.
type Kind string

const (
	// Validation: a precondition was not met. No side effects occurred.
	Validation Kind = "validation"
	// Dependency: an external collaborator call failed at a fatal step.
	Dependency Kind = "dependency"
	// State: the operation is invalid for the entity's current state.
	State Kind = "state"
)

// Fault is a structured fatal error. Entities names the offending records
// (product names out of stock, the declined payment method, …) so the
// operator always sees the specific cause, never a generic message.
type Fault struct {
	Kind     Kind
	Message  string
	Entities []string
}

func (f *Fault) Error() string {
	if len(f.Entities) == 0 {
		return f.Message
	}
	return f.Message + ": " + strings.Join(f.Entities, ", ")
}

func Validationf(format string, args ...interface{}) *Fault {
	return &Fault{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func Dependencyf(format string, args ...interface{}) *Fault {
	return &Fault{Kind: Dependency, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...interface{}) *Fault {
	return &Fault{Kind: State, Message: fmt.Sprintf(format, args...)}
}

// WithEntities attaches offending entity names and returns the same fault.
func (f *Fault) WithEntities(names ...string) *Fault {
	f.Entities = append(f.Entities, names...)
	return f
}

// KindOf extracts the Kind from an error, or "" when err is not a Fault.
func KindOf(err error) Kind {
	if f, ok := err.(*Fault); ok {
		return f.Kind
	}
	return ""
}

// Warning records a non-fatal step failure attached to a successful result.
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Warnings accumulates non-fatal failures during a multi-step operation.
type Warnings []Warning

func (w *Warnings) Add(step string, err error) {
	*w = append(*w, Warning{Step: step, Message: err.Error()})
}
