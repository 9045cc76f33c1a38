package minikanren

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// runStrings executes a single-variable goal and returns up to n reified
// answers in printed form. Printed forms keep the expectations in the
// tests below readable and make diffs stable.
func runStrings(t *testing.T, n int, goalFunc func(q *Var) Goal) []string {
	t.Helper()
	return runStringsWithConfig(t, nil, n, goalFunc)
}

func runStringsWithConfig(t *testing.T, cfg *SolverConfig, n int, goalFunc func(q *Var) Goal) []string {
	t.Helper()
	terms, err := RunWithConfig(cfg, n, goalFunc)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return termStrings(terms)
}

func termStrings(terms []Term) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = term.String()
	}
	return out
}

func diffStrings(t *testing.T, want, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("answers mismatch (-want, +got):\n%s", diff)
	}
}
