package wininput

import (
	"testing"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

func TestCodeToVKMappings(t *testing.T) {
	tests := []struct {
		code hotkey.Code
		vk   uint32
	}{
		{code: hotkey.KeyF8, vk: vkF8},
		{code: hotkey.BtnSide, vk: vkXBUTTON1},
		{code: hotkey.BtnExtra, vk: vkXBUTTON2},
		{code: hotkey.KeyLeftCtrl, vk: vkLCONTROL},
		{code: hotkey.KeyRightMeta, vk: vkRWIN},
		{code: hotkey.KeyPrint, vk: vkSNAPSHOT},
	}
	for _, tc := range tests {
		if vk, ok := CodeToVK(tc.code); !ok || vk != tc.vk {
			t.Fatalf("CodeToVK(%s)=%d,%v, want %d,true", tc.code, vk, ok, tc.vk)
		}
	}
}

func TestCodeFromVKMappings(t *testing.T) {
	if code, ok := CodeFromVK(vkA); !ok || code != hotkey.KeyA {
		t.Fatalf("CodeFromVK(vkA)=%d,%v, want %d,true", code, ok, hotkey.KeyA)
	}
	if code, ok := CodeFromVK(vkRETURN); !ok || code != hotkey.KeyEnter {
		t.Fatalf("CodeFromVK(vkRETURN)=%d,%v, want KEY_ENTER", code, ok)
	}
	if code, ok := CodeFromVK(vkSNAPSHOT); !ok || code != hotkey.KeyPrint {
		t.Fatalf("CodeFromVK(vkSNAPSHOT)=%d,%v, want KEY_PRINT", code, ok)
	}
	if _, ok := CodeFromVK(0xFF); ok {
		t.Fatalf("CodeFromVK(0xFF) should not resolve")
	}
}

func TestPollListCoversEveryVKOnce(t *testing.T) {
	seen := make(map[uint32]bool, len(pollVKs))
	for _, entry := range pollVKs {
		if seen[entry.vk] {
			t.Fatalf("virtual key %#x polled twice", entry.vk)
		}
		seen[entry.vk] = true
	}
	for code, vk := range codeToVK {
		if !seen[vk] {
			t.Fatalf("virtual key %#x for %s is never polled", vk, code)
		}
	}
}

func TestParsedHotkeysResolveToVKs(t *testing.T) {
	for _, raw := range []string{"Ctrl+Shift+F6", "Mouse4", "PrintScreen", "Alt+Tab"} {
		spec, ok := hotkey.Parse(raw)
		if !ok {
			t.Fatalf("Parse(%q) failed", raw)
		}
		if _, ok := CodeToVK(spec.Main); !ok {
			t.Fatalf("%q main key %s has no virtual key", raw, spec.Main)
		}
		for _, mod := range spec.Modifiers {
			if _, ok := CodeToVK(mod.Left); !ok {
				t.Fatalf("%q modifier %s has no virtual key", raw, mod.Left)
			}
		}
	}
}
