package process

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by Failure.Is, one per FailureKind.
var (
	ErrNotFound        = errors.New("not found")
	ErrAmbiguous       = errors.New("ambiguous")
	ErrDuplicateSource = errors.New("duplicate source")
	ErrNoLoader        = errors.New("no loader available")
	ErrUpstream        = errors.New("upstream failure")
)

// FailureKind classifies why a stage of identification failed.
type FailureKind int

const (
	NotFound FailureKind = iota + 1
	Ambiguous
	DuplicateSource
	NoLoaderAvailable
	UpstreamFailure
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Ambiguous:
		return "Ambiguous"
	case DuplicateSource:
		return "DuplicateSource"
	case NoLoaderAvailable:
		return "NoLoaderAvailable"
	case UpstreamFailure:
		return "UpstreamFailure"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case Ambiguous:
		return ErrAmbiguous
	case DuplicateSource:
		return ErrDuplicateSource
	case NoLoaderAvailable:
		return ErrNoLoader
	case UpstreamFailure:
		return ErrUpstream
	}
	return nil
}

// Failure is the terminal value of a failed stage. Reason is for people;
// callers branch on Kind or errors.Is, never on the text.
type Failure struct {
	Kind     FailureKind
	Source   string
	ItemName string
	ItemType ItemType
	Reason   string
	Err      error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s '%s': %s", f.Source, f.ItemType, f.ItemName, f.Reason)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the sentinel for the failure's kind.
func (f *Failure) Is(target error) bool {
	s := f.Kind.sentinel()
	return s != nil && s == target
}

// AsFailure extracts a *Failure from err. Errors that are not failures are
// reported as upstream failures with no source.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: UpstreamFailure, Reason: "unexpected error", Err: err}
}

// ResultContext stamps failures with the source and item they concern.
type ResultContext struct {
	Source   string
	ItemName string
	ItemType ItemType
}

// NewResultContext builds a context for the given source and descriptor.
func NewResultContext(source string, d ItemDescriptor) ResultContext {
	return ResultContext{Source: source, ItemName: d.Identifier().Name, ItemType: d.ItemType()}
}

// Failed returns a failure of the given kind.
func (c ResultContext) Failed(kind FailureKind, reason string) *Failure {
	return &Failure{Kind: kind, Source: c.Source, ItemName: c.ItemName, ItemType: c.ItemType, Reason: reason}
}

// Wrap returns a failure of the given kind carrying err as its cause.
func (c ResultContext) Wrap(kind FailureKind, err error, reason string) *Failure {
	f := c.Failed(kind, reason)
	f.Err = err
	return f
}
