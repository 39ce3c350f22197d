// Package event turns the invoking CI environment into a TriggerContext: either a change
// proposal (pull/merge request) or a direct push.
package event

import "fmt"

// Kind identifies the trigger variant.
type Kind string

const (
	KindChangeProposal Kind = "change-proposal"
	KindDirectPush     Kind = "direct-push"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// TriggerContext is implemented by ChangeProposal and DirectPush only.
type TriggerContext interface {
	Kind() Kind
	isTrigger()
}

// ChangeProposal is a pull/merge request: the head commit is compared against the
// tip of the target branch.
type ChangeProposal struct {
	BaseRef      string
	HeadRevision string
}

func (ChangeProposal) Kind() Kind { return KindChangeProposal }
func (ChangeProposal) isTrigger() {}

// DirectPush compares the commit before a push with the commit after it.
// BeforeRevision is git.ZeroSHA when the branch did not exist before the push.
type DirectPush struct {
	BeforeRevision string
	AfterRevision  string
}

func (DirectPush) Kind() Kind { return KindDirectPush }
func (DirectPush) isTrigger() {}

// UnsupportedContextError is returned for any event that is neither a change proposal
// nor a push.
type UnsupportedContextError struct {
	Event string
}

func (e *UnsupportedContextError) Error() string {
	return fmt.Sprintf("only pull requests and pushes are supported, %q events are not supported", e.Event)
}

// MissingFieldError is returned when an event lacks a value the trigger needs.
type MissingFieldError struct {
	Event string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s event is missing %q", e.Event, e.Field)
}
