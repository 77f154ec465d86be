package wininput

import (
	"sort"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const (
	vkLBUTTON  uint32 = 0x01
	vkRBUTTON  uint32 = 0x02
	vkMBUTTON  uint32 = 0x04
	vkXBUTTON1 uint32 = 0x05
	vkXBUTTON2 uint32 = 0x06

	vkBACK       uint32 = 0x08
	vkTAB        uint32 = 0x09
	vkRETURN     uint32 = 0x0D
	vkPAUSE      uint32 = 0x13
	vkCAPITAL    uint32 = 0x14
	vkESCAPE     uint32 = 0x1B
	vkSPACE      uint32 = 0x20
	vkPRIOR      uint32 = 0x21
	vkNEXT       uint32 = 0x22
	vkEND        uint32 = 0x23
	vkHOME       uint32 = 0x24
	vkLEFT       uint32 = 0x25
	vkUP         uint32 = 0x26
	vkRIGHT      uint32 = 0x27
	vkDOWN       uint32 = 0x28
	vkSNAPSHOT   uint32 = 0x2C
	vkINSERT     uint32 = 0x2D
	vkDELETE     uint32 = 0x2E
	vk0          uint32 = 0x30
	vk1          uint32 = 0x31
	vk2          uint32 = 0x32
	vk3          uint32 = 0x33
	vk4          uint32 = 0x34
	vk5          uint32 = 0x35
	vk6          uint32 = 0x36
	vk7          uint32 = 0x37
	vk8          uint32 = 0x38
	vk9          uint32 = 0x39
	vkA          uint32 = 0x41
	vkB          uint32 = 0x42
	vkC          uint32 = 0x43
	vkD          uint32 = 0x44
	vkE          uint32 = 0x45
	vkF          uint32 = 0x46
	vkG          uint32 = 0x47
	vkH          uint32 = 0x48
	vkI          uint32 = 0x49
	vkJ          uint32 = 0x4A
	vkK          uint32 = 0x4B
	vkL          uint32 = 0x4C
	vkM          uint32 = 0x4D
	vkN          uint32 = 0x4E
	vkO          uint32 = 0x4F
	vkP          uint32 = 0x50
	vkQ          uint32 = 0x51
	vkR          uint32 = 0x52
	vkS          uint32 = 0x53
	vkT          uint32 = 0x54
	vkU          uint32 = 0x55
	vkV          uint32 = 0x56
	vkW          uint32 = 0x57
	vkX          uint32 = 0x58
	vkY          uint32 = 0x59
	vkZ          uint32 = 0x5A
	vkLWIN       uint32 = 0x5B
	vkRWIN       uint32 = 0x5C
	vkAPPS       uint32 = 0x5D
	vkNUMPAD0    uint32 = 0x60
	vkNUMPAD1    uint32 = 0x61
	vkNUMPAD2    uint32 = 0x62
	vkNUMPAD3    uint32 = 0x63
	vkNUMPAD4    uint32 = 0x64
	vkNUMPAD5    uint32 = 0x65
	vkNUMPAD6    uint32 = 0x66
	vkNUMPAD7    uint32 = 0x67
	vkNUMPAD8    uint32 = 0x68
	vkNUMPAD9    uint32 = 0x69
	vkMULTIPLY   uint32 = 0x6A
	vkADD        uint32 = 0x6B
	vkSUBTRACT   uint32 = 0x6D
	vkDECIMAL    uint32 = 0x6E
	vkDIVIDE     uint32 = 0x6F
	vkF1         uint32 = 0x70
	vkF2         uint32 = 0x71
	vkF3         uint32 = 0x72
	vkF4         uint32 = 0x73
	vkF5         uint32 = 0x74
	vkF6         uint32 = 0x75
	vkF7         uint32 = 0x76
	vkF8         uint32 = 0x77
	vkF9         uint32 = 0x78
	vkF10        uint32 = 0x79
	vkF11        uint32 = 0x7A
	vkF12        uint32 = 0x7B
	vkF13        uint32 = 0x7C
	vkF14        uint32 = 0x7D
	vkF15        uint32 = 0x7E
	vkF16        uint32 = 0x7F
	vkF17        uint32 = 0x80
	vkF18        uint32 = 0x81
	vkF19        uint32 = 0x82
	vkF20        uint32 = 0x83
	vkF21        uint32 = 0x84
	vkF22        uint32 = 0x85
	vkF23        uint32 = 0x86
	vkF24        uint32 = 0x87
	vkNUMLOCK    uint32 = 0x90
	vkSCROLL     uint32 = 0x91
	vkLSHIFT     uint32 = 0xA0
	vkRSHIFT     uint32 = 0xA1
	vkLCONTROL   uint32 = 0xA2
	vkRCONTROL   uint32 = 0xA3
	vkLMENU      uint32 = 0xA4
	vkRMENU      uint32 = 0xA5
	vkVOLUMEMUTE uint32 = 0xAD
	vkVOLUMEDOWN uint32 = 0xAE
	vkVOLUMEUP   uint32 = 0xAF
	vkOEM1       uint32 = 0xBA
	vkOEMPLUS    uint32 = 0xBB
	vkOEMCOMMA   uint32 = 0xBC
	vkOEMMINUS   uint32 = 0xBD
	vkOEMPERIOD  uint32 = 0xBE
	vkOEM2       uint32 = 0xBF
	vkOEM3       uint32 = 0xC0
	vkOEM4       uint32 = 0xDB
	vkOEM5       uint32 = 0xDC
	vkOEM6       uint32 = 0xDD
	vkOEM7       uint32 = 0xDE
)

var codeToVK = map[hotkey.Code]uint32{
	hotkey.BtnLeft:       vkLBUTTON,
	hotkey.BtnRight:      vkRBUTTON,
	hotkey.BtnMiddle:     vkMBUTTON,
	hotkey.BtnSide:       vkXBUTTON1,
	hotkey.BtnExtra:      vkXBUTTON2,
	hotkey.KeyEsc:        vkESCAPE,
	hotkey.Key1:          vk1,
	hotkey.Key2:          vk2,
	hotkey.Key3:          vk3,
	hotkey.Key4:          vk4,
	hotkey.Key5:          vk5,
	hotkey.Key6:          vk6,
	hotkey.Key7:          vk7,
	hotkey.Key8:          vk8,
	hotkey.Key9:          vk9,
	hotkey.Key0:          vk0,
	hotkey.KeyMinus:      vkOEMMINUS,
	hotkey.KeyEqual:      vkOEMPLUS,
	hotkey.KeyBackspace:  vkBACK,
	hotkey.KeyTab:        vkTAB,
	hotkey.KeyQ:          vkQ,
	hotkey.KeyW:          vkW,
	hotkey.KeyE:          vkE,
	hotkey.KeyR:          vkR,
	hotkey.KeyT:          vkT,
	hotkey.KeyY:          vkY,
	hotkey.KeyU:          vkU,
	hotkey.KeyI:          vkI,
	hotkey.KeyO:          vkO,
	hotkey.KeyP:          vkP,
	hotkey.KeyLeftBrace:  vkOEM4,
	hotkey.KeyRightBrace: vkOEM6,
	hotkey.KeyEnter:      vkRETURN,
	hotkey.KeyLeftCtrl:   vkLCONTROL,
	hotkey.KeyA:          vkA,
	hotkey.KeyS:          vkS,
	hotkey.KeyD:          vkD,
	hotkey.KeyF:          vkF,
	hotkey.KeyG:          vkG,
	hotkey.KeyH:          vkH,
	hotkey.KeyJ:          vkJ,
	hotkey.KeyK:          vkK,
	hotkey.KeyL:          vkL,
	hotkey.KeySemicolon:  vkOEM1,
	hotkey.KeyApostrophe: vkOEM7,
	hotkey.KeyGrave:      vkOEM3,
	hotkey.KeyLeftShift:  vkLSHIFT,
	hotkey.KeyBackslash:  vkOEM5,
	hotkey.KeyZ:          vkZ,
	hotkey.KeyX:          vkX,
	hotkey.KeyC:          vkC,
	hotkey.KeyV:          vkV,
	hotkey.KeyB:          vkB,
	hotkey.KeyN:          vkN,
	hotkey.KeyM:          vkM,
	hotkey.KeyComma:      vkOEMCOMMA,
	hotkey.KeyDot:        vkOEMPERIOD,
	hotkey.KeySlash:      vkOEM2,
	hotkey.KeyRightShift: vkRSHIFT,
	hotkey.KeyKPAsterisk: vkMULTIPLY,
	hotkey.KeyLeftAlt:    vkLMENU,
	hotkey.KeySpace:      vkSPACE,
	hotkey.KeyCapsLock:   vkCAPITAL,
	hotkey.KeyF1:         vkF1,
	hotkey.KeyF2:         vkF2,
	hotkey.KeyF3:         vkF3,
	hotkey.KeyF4:         vkF4,
	hotkey.KeyF5:         vkF5,
	hotkey.KeyF6:         vkF6,
	hotkey.KeyF7:         vkF7,
	hotkey.KeyF8:         vkF8,
	hotkey.KeyF9:         vkF9,
	hotkey.KeyF10:        vkF10,
	hotkey.KeyNumLock:    vkNUMLOCK,
	hotkey.KeyScrollLock: vkSCROLL,
	hotkey.KeyKP7:        vkNUMPAD7,
	hotkey.KeyKP8:        vkNUMPAD8,
	hotkey.KeyKP9:        vkNUMPAD9,
	hotkey.KeyKPMinus:    vkSUBTRACT,
	hotkey.KeyKP4:        vkNUMPAD4,
	hotkey.KeyKP5:        vkNUMPAD5,
	hotkey.KeyKP6:        vkNUMPAD6,
	hotkey.KeyKPPlus:     vkADD,
	hotkey.KeyKP1:        vkNUMPAD1,
	hotkey.KeyKP2:        vkNUMPAD2,
	hotkey.KeyKP3:        vkNUMPAD3,
	hotkey.KeyKP0:        vkNUMPAD0,
	hotkey.KeyKPDot:      vkDECIMAL,
	hotkey.KeyF11:        vkF11,
	hotkey.KeyF12:        vkF12,
	hotkey.KeyKPEnter:    vkRETURN,
	hotkey.KeyRightCtrl:  vkRCONTROL,
	hotkey.KeyKPSlash:    vkDIVIDE,
	hotkey.KeySysRq:      vkSNAPSHOT,
	hotkey.KeyRightAlt:   vkRMENU,
	hotkey.KeyHome:       vkHOME,
	hotkey.KeyUp:         vkUP,
	hotkey.KeyPageUp:     vkPRIOR,
	hotkey.KeyLeft:       vkLEFT,
	hotkey.KeyRight:      vkRIGHT,
	hotkey.KeyEnd:        vkEND,
	hotkey.KeyDown:       vkDOWN,
	hotkey.KeyPageDown:   vkNEXT,
	hotkey.KeyInsert:     vkINSERT,
	hotkey.KeyDelete:     vkDELETE,
	hotkey.KeyMute:       vkVOLUMEMUTE,
	hotkey.KeyVolumeDown: vkVOLUMEDOWN,
	hotkey.KeyVolumeUp:   vkVOLUMEUP,
	hotkey.KeyPause:      vkPAUSE,
	hotkey.KeyLeftMeta:   vkLWIN,
	hotkey.KeyRightMeta:  vkRWIN,
	hotkey.KeyMenu:       vkAPPS,
	hotkey.KeyF13:        vkF13,
	hotkey.KeyF14:        vkF14,
	hotkey.KeyF15:        vkF15,
	hotkey.KeyF16:        vkF16,
	hotkey.KeyF17:        vkF17,
	hotkey.KeyF18:        vkF18,
	hotkey.KeyF19:        vkF19,
	hotkey.KeyF20:        vkF20,
	hotkey.KeyF21:        vkF21,
	hotkey.KeyF22:        vkF22,
	hotkey.KeyF23:        vkF23,
	hotkey.KeyF24:        vkF24,
	hotkey.KeyPrint:      vkSNAPSHOT,
}

// pollVKs lists each virtual key once, paired with the code it reports.
// Codes sharing a virtual key with a lower code (keypad Enter) are not
// reported when polling.
var pollVKs []vkCode

type vkCode struct {
	vk   uint32
	code hotkey.Code
}

var vkToCode map[uint32]hotkey.Code

func init() {
	codes := make([]hotkey.Code, 0, len(codeToVK))
	for code := range codeToVK {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	vkToCode = make(map[uint32]hotkey.Code, len(codeToVK))
	for _, code := range codes {
		vk := codeToVK[code]
		if _, exists := vkToCode[vk]; exists {
			continue
		}
		vkToCode[vk] = code
	}
	vkToCode[vkSNAPSHOT] = hotkey.KeyPrint

	pollVKs = make([]vkCode, 0, len(vkToCode))
	for vk, code := range vkToCode {
		pollVKs = append(pollVKs, vkCode{vk: vk, code: code})
	}
	sort.Slice(pollVKs, func(i, j int) bool { return pollVKs[i].vk < pollVKs[j].vk })
}

func CodeToVK(code hotkey.Code) (uint32, bool) {
	vk, ok := codeToVK[code]
	return vk, ok
}

func CodeFromVK(vk uint32) (hotkey.Code, bool) {
	code, ok := vkToCode[vk]
	return code, ok
}
