package socratic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchPlanUnique(t *testing.T) {
	plan, err := NewSearchPlan([]SearchTerm{
		{Reason: "r1", Query: "Rust vs Go performance"},
		{Reason: "r2", Query: "Go garbage collector"},
		{Reason: "r3", Query: "Rust borrow checker"},
	})
	require.NoError(t, err)
	assert.Len(t, plan.Searches, 3)
}

func TestNewSearchPlanDuplicateRejected(t *testing.T) {
	_, err := NewSearchPlan([]SearchTerm{
		{Reason: "r1", Query: "Rust vs Go"},
		{Reason: "r2", Query: " rust  VS go "},
	})
	require.ErrorIs(t, err, ErrDuplicateSearchTerm)
}

func TestNewSearchPlanEmptyQueryRejected(t *testing.T) {
	_, err := NewSearchPlan([]SearchTerm{{Reason: "r", Query: "   "}})
	require.ErrorIs(t, err, ErrMalformedGeneration)
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Rust vs Go", "rust vs go"},
		{"  rust  VS   go  ", "rust vs go"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeQuery(tt.in), "input %q", tt.in)
	}
}
