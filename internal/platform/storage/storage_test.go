package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hradmin/internal/platform/config"
)

func TestUnconfiguredStoreFailsClosed(t *testing.T) {
	s, err := New(context.Background(), config.Config{MinioBucket: "hradmin"})
	if err != nil {
		t.Fatalf("expected no error without endpoint, got %v", err)
	}
	if s.Configured() {
		t.Fatal("expected store to report unconfigured")
	}
	if err := s.Put(context.Background(), "k", strings.NewReader("x"), 1, "text/plain"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on put, got %v", err)
	}
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on get, got %v", err)
	}
}

func TestNilStoreIsUnconfigured(t *testing.T) {
	var s *ObjectStore
	if s.Configured() {
		t.Fatal("nil store must not be configured")
	}
}
