package keymap

import "github.com/MaaXYZ/maa-framework-go/v4"

func Register() {
	maa.AgentServerRegisterCustomAction("KeymapClickKey", &_ClickKey{})
	maa.AgentServerRegisterCustomAction("KeymapLongPressKey", &_LongPressKey{})
	maa.AgentServerRegisterCustomAction("KeymapKeyDown", &_KeyDown{})
	maa.AgentServerRegisterCustomAction("KeymapKeyUp", &_KeyUp{})
	maa.AgentServerRegisterCustomAction("KeymapPressMultipleKeys", &_PressMultipleKeys{})
	maa.AgentServerRegisterCustomAction("KeymapRunWithShift", &_RunWithShift{})
}
