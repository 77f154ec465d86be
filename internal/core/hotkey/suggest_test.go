package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownTokens(t *testing.T) {
	assert.Equal(t, []string{"HYPR"}, UnknownTokens("Ctrl+Hypr+A"))
	assert.Empty(t, UnknownTokens("Ctrl+A"))
}

func TestSuggestRanksCloseNames(t *testing.T) {
	got := Suggest("pgdwn", 3)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "PGDOWN")
	assert.LessOrEqual(t, len(got), 3)

	assert.Nil(t, Suggest("", 3))
	assert.Nil(t, Suggest("esc", 0))
}
