package resetposition

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	DefaultTemplatePath  = "common/其他.png"
	DefaultWaitDelay     = 500 // ms
	DefaultRetryTimes    = 10
	DefaultRetryInterval = 500 // ms
	DefaultKey           = "Menu"
	DefaultDebugDir      = "debug/ResetCharacterPosition"
)

// Params is the per-invocation parameter bag.
//
//	{
//	    "template_path": "common/其他.png",
//	    "wait_delay": 500,
//	    "retry_times": 10,
//	    "retry_interval": 500
//	}
type Params struct {
	TemplatePath  string
	WaitDelay     int
	RetryTimes    int
	RetryInterval int
	Key           string
	Debug         bool
	DebugDir      string
}

// rawParams distinguishes absent keys from explicit zero values.
type rawParams struct {
	TemplatePath  *string `json:"template_path"`
	WaitDelay     *int    `json:"wait_delay"`
	RetryTimes    *int    `json:"retry_times"`
	RetryInterval *int    `json:"retry_interval"`
	Key           *string `json:"key"`
	Debug         *bool   `json:"debug"`
	DebugDir      *string `json:"debug_dir"`
}

func DefaultParams() Params {
	return Params{
		TemplatePath:  DefaultTemplatePath,
		WaitDelay:     DefaultWaitDelay,
		RetryTimes:    DefaultRetryTimes,
		RetryInterval: DefaultRetryInterval,
		Key:           DefaultKey,
		DebugDir:      DefaultDebugDir,
	}
}

// ParseParams decodes a CustomActionParam. An empty param yields the defaults; a JSON
// string whose content is itself a JSON object is decoded again.
func ParseParams(raw string) (Params, error) {
	p := DefaultParams()

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return p, nil
	}

	var in rawParams
	if err := sonic.UnmarshalString(raw, &in); err != nil {
		var inner string
		if sonic.UnmarshalString(raw, &inner) != nil {
			return p, fmt.Errorf("parse param: %w", err)
		}
		return ParseParams(inner)
	}

	if in.TemplatePath != nil {
		p.TemplatePath = *in.TemplatePath
	}
	if in.WaitDelay != nil {
		p.WaitDelay = *in.WaitDelay
	}
	if in.RetryTimes != nil {
		p.RetryTimes = *in.RetryTimes
	}
	if in.RetryInterval != nil {
		p.RetryInterval = *in.RetryInterval
	}
	if in.Key != nil {
		p.Key = *in.Key
	}
	if in.Debug != nil {
		p.Debug = *in.Debug
	}
	if in.DebugDir != nil {
		p.DebugDir = *in.DebugDir
	}

	if p.WaitDelay < 0 {
		return p, fmt.Errorf("wait_delay must not be negative: %d", p.WaitDelay)
	}
	if p.RetryInterval < 0 {
		return p, fmt.Errorf("retry_interval must not be negative: %d", p.RetryInterval)
	}
	return p, nil
}

func (p Params) waitDelay() time.Duration {
	return time.Duration(p.WaitDelay) * time.Millisecond
}

func (p Params) retryInterval() time.Duration {
	return time.Duration(p.RetryInterval) * time.Millisecond
}
