package ui

import (
	"context"
	"errors"
	"testing"
)

func TestListStateLifecycle(t *testing.T) {
	var s ListState[string]
	if s.Status() != ListIdle {
		t.Fatalf("initial status = %v, want idle", s.Status())
	}

	gen := s.Begin()
	if s.Status() != ListLoading {
		t.Fatalf("status after Begin = %v, want loading", s.Status())
	}

	if !s.Complete(gen, []string{"a", "b"}) {
		t.Fatal("Complete with current generation should apply")
	}
	if s.Status() != ListLoaded || len(s.Items()) != 2 {
		t.Fatalf("status = %v items = %v", s.Status(), s.Items())
	}
}

func TestListStateEmptyIsLoaded(t *testing.T) {
	var s ListState[string]
	gen := s.Begin()
	s.Complete(gen, []string{})
	if s.Status() != ListLoaded {
		t.Fatalf("empty result should still be loaded, got %v", s.Status())
	}
	if len(s.Items()) != 0 {
		t.Fatalf("items = %v, want empty", s.Items())
	}
}

func TestListStateStaleCompletionIgnored(t *testing.T) {
	var s ListState[string]

	stale := s.Begin()
	fresh := s.Begin()

	if s.Complete(stale, []string{"old"}) {
		t.Fatal("stale completion should be rejected")
	}
	if s.Status() != ListLoading {
		t.Fatalf("status = %v, want still loading", s.Status())
	}

	if !s.Complete(fresh, []string{"new"}) {
		t.Fatal("fresh completion should apply")
	}
	if s.Items()[0] != "new" {
		t.Fatalf("items = %v, want [new]", s.Items())
	}
}

func TestListStateStaleFailureIgnored(t *testing.T) {
	var s ListState[string]

	stale := s.Begin()
	fresh := s.Begin()
	s.Complete(fresh, []string{"kept"})

	if s.Fail(stale, "boom") {
		t.Fatal("stale failure should be rejected")
	}
	if s.Status() != ListLoaded {
		t.Fatalf("status = %v, want loaded", s.Status())
	}
}

func TestListStateReload(t *testing.T) {
	var s ListState[int]

	err := s.Reload(context.Background(), func(context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Status() != ListLoaded || len(s.Items()) != 3 {
		t.Fatalf("status = %v items = %v", s.Status(), s.Items())
	}

	err = s.Reload(context.Background(), func(context.Context) ([]int, error) {
		return nil, errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Status() != ListFailed {
		t.Fatalf("status = %v, want failed", s.Status())
	}
	if s.Err() != "connection refused" {
		t.Fatalf("Err = %q", s.Err())
	}
}
