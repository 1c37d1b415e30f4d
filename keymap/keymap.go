package keymap

import (
	"github.com/rs/zerolog/log"
)

// Win32 virtual-key codes used by the default Endfield bindings.
const (
	VKLeftButton   int32 = 0x01
	VKMiddleButton int32 = 0x04
	VKTab          int32 = 0x09
	VKShift        int32 = 0x10
	VKControl      int32 = 0x11
	VKCapsLock     int32 = 0x14
	VKEscape       int32 = 0x1B
	VKSpace        int32 = 0x20
	VKF1           int32 = 0x70
	VKF2           int32 = 0x71
	VKF3           int32 = 0x72
	VKF4           int32 = 0x73
	VKF8           int32 = 0x77
	VKF9           int32 = 0x78

	// VKUnsupported marks a binding the controller cannot post as a key event.
	VKUnsupported int32 = -1
	// VKInvalid is returned for names missing from the table.
	VKInvalid int32 = -2
)

// vkLetter maps 'A'..'Z' and '0'..'9' to their virtual-key codes, which equal the ASCII value.
func vkLetter(c byte) int32 { return int32(c) }

// Win32KeyEnum holds the default in-game bindings. Entries marked locked cannot be rebound in game.
var Win32KeyEnum = map[string]int32{
	// General
	"Move_W":           vkLetter('W'), // locked
	"Move_A":           vkLetter('A'), // locked
	"Move_S":           vkLetter('S'), // locked
	"Move_D":           vkLetter('D'), // locked
	"Dash":             VKShift,
	"Jump":             VKSpace,
	"Interact":         vkLetter('F'),
	"Walk":             VKControl, // locked
	"Menu":             VKEscape,  // locked
	"Backpack":         vkLetter('B'),
	"Valuables":        vkLetter('N'),
	"Team":             vkLetter('U'),
	"Operator":         vkLetter('C'),
	"Mission":          vkLetter('J'),
	"TrackMission":     vkLetter('V'),
	"Map":              vkLetter('M'),
	"BackerChat":       vkLetter('H'),
	"Mail":             vkLetter('K'),
	"Operational":      VKF8,
	"Headhunt":         VKF9,
	"SwitchModes":      VKTab, // locked
	"UseTools":         vkLetter('R'),
	"ExpandToolsWheel": vkLetter('R'), // long press of UseTools

	// Combat
	"Attack":              VKLeftButton,   // locked
	"LockToTarget":        VKMiddleButton, // locked
	"SwitchTarget":        VKUnsupported,  // mouse wheel, use a Scroll action
	"CastCombo":           vkLetter('E'),
	"OperatorSkill_1":     vkLetter('1'),
	"OperatorSkill_2":     vkLetter('2'),
	"OperatorSkill_3":     vkLetter('3'),
	"OperatorSkill_4":     vkLetter('4'),
	"OperatorUltimate_1":  vkLetter('1'), // long press of OperatorSkill_1
	"OperatorUltimate_2":  vkLetter('2'),
	"OperatorUltimate_3":  vkLetter('3'),
	"OperatorUltimate_4":  vkLetter('4'),
	"SwitchOperator_1":    VKF1,
	"SwitchOperator_2":    VKF2,
	"SwitchOperator_3":    VKF3,
	"SwitchOperator_4":    VKF4,
	"SwitchOperator_Next": vkLetter('Q'),

	// AIC Factory
	"AICFactoryPlan":        vkLetter('T'),
	"TransportBelt":         vkLetter('E'),
	"Pipeline":              vkLetter('Q'),
	"FacilityList":          vkLetter('Z'),
	"TopViewMode":           VKCapsLock,
	"StashMode":             vkLetter('X'),
	"RegionalDeployment":    vkLetter('Y'),
	"Blueprints":            VKF1,
	"Show/HideProductIcons": VKF4,
}

// GetKeyCode resolves a binding name to its virtual-key code.
//
// Returns VKInvalid for unknown names and VKUnsupported for bindings that
// exist but cannot be posted as keys. Callers should treat any negative value as failure.
func GetKeyCode(key string) int32 {
	keyCode, ok := Win32KeyEnum[key]
	if !ok {
		log.Error().Str("key", key).Msg("Invalid key")
		return VKInvalid
	}
	if keyCode == VKUnsupported {
		log.Error().Str("key", key).Msg("Unsupported key")
	}
	return keyCode
}
