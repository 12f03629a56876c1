package ui

import "context"

type ListStatus int

const (
	ListIdle ListStatus = iota
	ListLoading
	ListLoaded
	ListFailed
)

func (s ListStatus) String() string {
	switch s {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	}
	return "unknown"
}

// ListState tracks one list view. Every load bumps a generation counter and a
// completion applies only when its generation is still current, so a stale
// response can never clobber a newer one.
type ListState[T any] struct {
	status     ListStatus
	items      []T
	errMsg     string
	generation uint64
}

func (s *ListState[T]) Status() ListStatus { return s.status }
func (s *ListState[T]) Err() string        { return s.errMsg }

// Items returns the last loaded rows. Only meaningful when Status is
// ListLoaded.
func (s *ListState[T]) Items() []T { return s.items }

// Begin marks the list loading and returns the generation token the eventual
// completion must present.
func (s *ListState[T]) Begin() uint64 {
	s.generation++
	s.status = ListLoading
	return s.generation
}

// Complete applies a successful load. Returns false when a newer load has
// started since gen was issued.
func (s *ListState[T]) Complete(gen uint64, items []T) bool {
	if gen != s.generation {
		return false
	}
	s.status = ListLoaded
	s.items = items
	s.errMsg = ""
	return true
}

// Fail applies a failed load under the same generation rule.
func (s *ListState[T]) Fail(gen uint64, msg string) bool {
	if gen != s.generation {
		return false
	}
	s.status = ListFailed
	s.errMsg = msg
	return true
}

// Reload runs fetch and applies the outcome through the generation guard.
func (s *ListState[T]) Reload(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	gen := s.Begin()
	items, err := fetch(ctx)
	if err != nil {
		s.Fail(gen, err.Error())
		return err
	}
	s.Complete(gen, items)
	return nil
}
