package override

import (
	"testing"

	"github.com/kbukum/bundlegen/logger"
)

func newTestMerger(t *testing.T) *Merger {
	t.Helper()
	m, err := NewMerger("default", WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewMerger: %v", err)
	}
	return m
}

func mustSelectors(t *testing.T, entries ...Entry) Selectors {
	t.Helper()
	s, err := NewSelectors(entries...)
	if err != nil {
		t.Fatalf("NewSelectors: %v", err)
	}
	return s
}

// obj and arr keep document literals short.
type obj = map[string]any
type arr = []any
