// Package testutil provides small assertion helpers shared by tests.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal fails the test if got and want differ, printing a diff.
func Equal(t *testing.T, got, want any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// NoError fails the test immediately if err is non-nil.
func NoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Error fails the test immediately if err is nil.
func Error(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
