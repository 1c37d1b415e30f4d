package keymap

import (
	"fmt"
	"strings"
	"time"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// keyPoster is the slice of the controller the key actions need.
type keyPoster interface {
	ClickKey(code int32) bool
	KeyDown(code int32) bool
	KeyUp(code int32) bool
}

type controllerPoster struct {
	ctrl *maa.Controller
}

func (p controllerPoster) ClickKey(code int32) bool { return p.ctrl.PostClickKey(code).Wait().Done() }
func (p controllerPoster) KeyDown(code int32) bool  { return p.ctrl.PostKeyDown(code).Wait().Done() }
func (p controllerPoster) KeyUp(code int32) bool    { return p.ctrl.PostKeyUp(code).Wait().Done() }

func posterFor(ctx *maa.Context) keyPoster {
	return controllerPoster{ctrl: ctx.GetTasker().GetController()}
}

var sleep = time.Sleep

type keyParam struct {
	Key      string   `json:"key"`
	Keys     []string `json:"keys"`
	Duration int      `json:"duration"`
	Interval int      `json:"interval"`
}

// parseKeyParam accepts a JSON object, or a JSON string holding one.
func parseKeyParam(raw string) (keyParam, error) {
	var p keyParam
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p, fmt.Errorf("empty param")
	}
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		var inner string
		if sonic.UnmarshalString(raw, &inner) != nil {
			return p, fmt.Errorf("parse key param: %w", err)
		}
		return parseKeyParam(inner)
	}
	if p.Duration < 0 || p.Interval < 0 {
		return p, fmt.Errorf("negative duration or interval")
	}
	return p, nil
}

// resolve returns the code for name or false when it cannot be posted.
func resolve(name string) (int32, bool) {
	code := GetKeyCode(name)
	return code, code >= 0
}

func longPress(p keyPoster, code int32, d time.Duration) bool {
	if !p.KeyDown(code) {
		return false
	}
	sleep(d)
	return p.KeyUp(code)
}

func pressSequence(p keyPoster, codes []int32, interval time.Duration) bool {
	for i, code := range codes {
		if i > 0 {
			sleep(interval)
		}
		if !p.ClickKey(code) {
			return false
		}
	}
	return true
}

// runWithShift holds the movement key, then Dash on top of it, and releases both after d.
// Keys are released even when a press fails so the game is not left with a stuck key.
func runWithShift(p keyPoster, move int32, d time.Duration) bool {
	dash := Win32KeyEnum["Dash"]
	if !p.KeyDown(move) {
		return false
	}
	ok := p.KeyDown(dash)
	if ok {
		sleep(d)
	}
	dashUp := p.KeyUp(dash)
	moveUp := p.KeyUp(move)
	return ok && dashUp && moveUp
}

// In order to avoid conflict with maafw built-in actions, types are unexported and
// registered under a Keymap prefix.
type _ClickKey struct{}

type _LongPressKey struct{}

type _KeyDown struct{}

type _KeyUp struct{}

type _PressMultipleKeys struct{}

type _RunWithShift struct{}

var (
	_ maa.CustomActionRunner = &_ClickKey{}
	_ maa.CustomActionRunner = &_LongPressKey{}
	_ maa.CustomActionRunner = &_KeyDown{}
	_ maa.CustomActionRunner = &_KeyUp{}
	_ maa.CustomActionRunner = &_PressMultipleKeys{}
	_ maa.CustomActionRunner = &_RunWithShift{}
)

// singleKey parses the param and resolves its "key" field.
func singleKey(arg *maa.CustomActionArg) (keyParam, int32, bool) {
	params, err := parseKeyParam(arg.CustomActionParam)
	if err != nil {
		log.Error().Err(err).Str("action", arg.CustomActionName).Msg("Failed to parse CustomActionParam")
		return params, 0, false
	}
	code, ok := resolve(params.Key)
	return params, code, ok
}

func (a *_ClickKey) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	_, code, ok := singleKey(arg)
	if !ok {
		return false
	}
	return posterFor(ctx).ClickKey(code)
}

func (a *_LongPressKey) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	params, code, ok := singleKey(arg)
	if !ok {
		return false
	}
	return longPress(posterFor(ctx), code, time.Duration(params.Duration)*time.Millisecond)
}

func (a *_KeyDown) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	_, code, ok := singleKey(arg)
	if !ok {
		return false
	}
	return posterFor(ctx).KeyDown(code)
}

func (a *_KeyUp) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	_, code, ok := singleKey(arg)
	if !ok {
		return false
	}
	return posterFor(ctx).KeyUp(code)
}

func (a *_PressMultipleKeys) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	params, err := parseKeyParam(arg.CustomActionParam)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse CustomActionParam")
		return false
	}
	if len(params.Keys) == 0 {
		log.Error().Msg("PressMultipleKeys needs at least one key")
		return false
	}

	codes := make([]int32, 0, len(params.Keys))
	for _, name := range params.Keys {
		code, ok := resolve(name)
		if !ok {
			return false
		}
		codes = append(codes, code)
	}

	log.Debug().Strs("keys", params.Keys).Int("interval", params.Interval).Msg("Pressing key sequence")
	return pressSequence(posterFor(ctx), codes, time.Duration(params.Interval)*time.Millisecond)
}

func (a *_RunWithShift) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	params, code, ok := singleKey(arg)
	if !ok {
		return false
	}
	log.Debug().Str("key", params.Key).Int("duration", params.Duration).Msg("Running with shift")
	return runWithShift(posterFor(ctx), code, time.Duration(params.Duration)*time.Millisecond)
}
