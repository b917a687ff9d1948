package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			"nested list survives as one token",
			"a, b(c, d), e",
			[]string{"a", "b(c, d)", "e"},
		},
		{
			"plain list",
			"water, sugar, salt",
			[]string{"water", "sugar", "salt"},
		},
		{
			"empty tokens dropped",
			"water,, salt,",
			[]string{"water", "salt"},
		},
		{
			"stray closing paren clamps at zero",
			"water), sugar",
			[]string{"water)", "sugar"},
		},
		{
			"deeply nested",
			"emulsifier (mono- (and di-) glycerides), salt",
			[]string{"emulsifier (mono- (and di-) glycerides)", "salt"},
		},
		{
			"empty input",
			"",
			nil,
		},
		{
			"only separators",
			" , , ",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitTopLevel(tt.input))
		})
	}
}

func TestParseEntries(t *testing.T) {
	entries := ParseEntries("Wheat flour (60%), Sugar, Palm oil")
	require.Len(t, entries, 3)

	assert.Equal(t, "Wheat flour", entries[0].Name)
	require.NotNil(t, entries[0].Percent)
	assert.InDelta(t, 60.0, *entries[0].Percent, 0.001)

	assert.Equal(t, "Sugar", entries[1].Name)
	assert.Nil(t, entries[1].Percent)

	assert.Equal(t, "Palm oil", entries[2].Name)
	assert.Nil(t, entries[2].Percent)
}

func TestParseEntries_ParenthesizedPercentRemovedFromName(t *testing.T) {
	entries := ParseEntries("Tomato paste (28.5%) concentrate")
	require.Len(t, entries, 1)
	assert.Equal(t, "Tomato paste concentrate", entries[0].Name)
	require.NotNil(t, entries[0].Percent)
	assert.InDelta(t, 28.5, *entries[0].Percent, 0.001)
}

func TestParseEntries_BarePercentRemovedFromName(t *testing.T) {
	entries := ParseEntries("cocoa solids 70% minimum")
	require.Len(t, entries, 1)
	assert.Equal(t, "cocoa solids minimum", entries[0].Name)
	require.NotNil(t, entries[0].Percent)
	assert.InDelta(t, 70.0, *entries[0].Percent, 0.001)
}

func TestParseEntries_PercentInsideUnclosedParens(t *testing.T) {
	entries := ParseEntries("(70% cocoa solids)")
	require.Len(t, entries, 1)
	assert.Equal(t, "cocoa solids", entries[0].Name)
	require.NotNil(t, entries[0].Percent)
	assert.InDelta(t, 70.0, *entries[0].Percent, 0.001)
}

func TestParseEntries_TrimsTokenPunctuation(t *testing.T) {
	entries := ParseEntries("water; , salt. ")
	require.Len(t, entries, 2)
	assert.Equal(t, "water", entries[0].Name)
	assert.Equal(t, "salt", entries[1].Name)
}

func TestParseEntries_DropsEmptyNames(t *testing.T) {
	assert.Empty(t, ParseEntries("(50%), ."))
	assert.Empty(t, ParseEntries(""))
}

func TestParseEntries_SubListNotSplit(t *testing.T) {
	// The nested code list stays inside one entry; the trailing paren falls
	// to the edge trim.
	entries := ParseEntries("emulsifiers (E471, E322), salt")
	require.Len(t, entries, 2)
	assert.Equal(t, "emulsifiers (E471, E322", entries[0].Name)
	assert.Nil(t, entries[0].Percent)
	assert.Equal(t, "salt", entries[1].Name)
}
