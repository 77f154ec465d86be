package macinput

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

func TestMacKeyCodesAreUnique(t *testing.T) {
	seen := make(map[uint16]hotkey.Code, len(codeToMacKey))
	for code, key := range codeToMacKey {
		if other, dup := seen[key]; dup {
			t.Fatalf("kVK %#x used by %s and %s", key, code, other)
		}
		seen[key] = code
	}
}

func TestModifiersAreMapped(t *testing.T) {
	for _, pair := range []hotkey.ModifierPair{hotkey.ModCtrl, hotkey.ModAlt, hotkey.ModShift, hotkey.ModMeta} {
		_, left := codeToMacKey[pair.Left]
		_, right := codeToMacKey[pair.Right]
		assert.True(t, left, "left %s", pair.Left)
		assert.True(t, right, "right %s", pair.Right)
	}
}

func TestPollEntriesSorted(t *testing.T) {
	assert.Len(t, pollKeys, len(codeToMacKey))
	assert.Len(t, pollButtons, len(codeToMacButton))
	for i := 1; i < len(pollKeys); i++ {
		assert.Less(t, pollKeys[i-1].code, pollKeys[i].code)
	}
}

func TestRobotgoButton(t *testing.T) {
	name, ok := robotgoButton(uint16(hotkey.BtnLeft))
	assert.True(t, ok)
	assert.Equal(t, "left", name)

	name, ok = robotgoButton(uint16(hotkey.BtnRight))
	assert.True(t, ok)
	assert.Equal(t, "right", name)

	_, ok = robotgoButton(uint16(hotkey.BtnSide))
	assert.False(t, ok)
}
