package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Category
		wantOK bool
	}{
		{name: "y_ok.json", want: MustAccept, wantOK: true},
		{name: "n_bad.json", want: MustReject, wantOK: true},
		{name: "i_weird.json", want: ImplementationDefined, wantOK: true},
		{name: "tests/y_nested.json", want: MustAccept, wantOK: true},
		{name: "README.md", wantOK: false},
		{name: "Y_upper.json", wantOK: false},
		{name: "y", wantOK: false},
		{name: "x_y_.json", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CategoryFromName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCategoryExpectations(t *testing.T) {
	accept := MustAccept.Expectation()
	require.True(t, accept.Defined)
	assert.Equal(t, ExitRejected, accept.Unexpected)

	reject := MustReject.Expectation()
	require.True(t, reject.Defined)
	assert.Equal(t, ExitAccepted, reject.Unexpected)

	assert.False(t, ImplementationDefined.Expectation().Defined)

	assert.True(t, MustAccept.Mandatory())
	assert.True(t, MustReject.Mandatory())
	assert.False(t, ImplementationDefined.Mandatory())
}

func TestCategoryPrefixesAreDisjoint(t *testing.T) {
	seen := make(map[string]Category)
	for _, c := range Categories {
		prefix := c.Prefix()
		require.Len(t, prefix, 2)
		_, dup := seen[prefix]
		require.False(t, dup, "duplicate prefix %q", prefix)
		seen[prefix] = c

		got, ok := CategoryFromName(prefix + "case")
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "must-accept", MustAccept.String())
	assert.Equal(t, "must-reject", MustReject.String())
	assert.Equal(t, "implementation-defined", ImplementationDefined.String())
	assert.Equal(t, "unknown", Category(42).String())
}

func TestNewTestFile(t *testing.T) {
	f, ok := NewTestFile("tests", "n_trailing_comma.json")
	require.True(t, ok)
	assert.Equal(t, "n_trailing_comma.json", f.Name)
	assert.Equal(t, filepath.Join("tests", "n_trailing_comma.json"), f.Path)
	assert.Equal(t, MustReject, f.Category)

	_, ok = NewTestFile("tests", "notes.txt")
	assert.False(t, ok)
}

func TestVerdictFromExitCode(t *testing.T) {
	assert.Equal(t, VerdictAccepted, VerdictFromExitCode(0))
	assert.Equal(t, VerdictRejected, VerdictFromExitCode(2))
	for _, code := range []int{-1, 1, 3, 127, 139, 255} {
		assert.Equal(t, VerdictCrashed, VerdictFromExitCode(code), "exit code %d", code)
	}
}
