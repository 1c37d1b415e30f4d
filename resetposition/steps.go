package resetposition

import (
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ZeroAd-06/MaaEnd/agent/go-service/debugimg"
	"github.com/ZeroAd-06/MaaEnd/agent/go-service/keymap"
)

const logPrefix = "[ResetCharacterPosition]"

// clickStep recognises a pipeline node and clicks the centre of the hit.
type clickStep struct {
	name   string
	node   string // pipeline node declared in resetPosition.json
	target string // on-screen text or template, for logs only
	// settle is an extra pause after the post-click screenshot refresh.
	settle   time.Duration
	override func(Params) map[string]any
}

// 菜单 -> 设置 -> 其他 -> 复位角色 -> 确定
var clickSteps = []clickStep{
	{name: "ClickSettings", node: "OCR_Settings", target: "设置"},
	{name: "ClickOther", node: "Template_Other", target: "其他", override: templateOverride},
	{name: "ClickResetCharacter", node: "OCR_ResetCharacter", target: "复位角色"},
	{name: "ClickConfirm", node: "OCR_Confirm", target: "确定", settle: 100 * time.Millisecond},
}

// templateOverride swaps the template of Template_Other only when a non-default one is requested.
func templateOverride(p Params) map[string]any {
	if p.TemplatePath == DefaultTemplatePath {
		return nil
	}
	return map[string]any{
		"Template_Other": map[string]any{
			"template": p.TemplatePath,
		},
	}
}

type runner struct {
	driver Driver
	params Params
	sleep  func(time.Duration)
}

func newRunner(d Driver, p Params) *runner {
	return &runner{driver: d, params: p, sleep: time.Sleep}
}

// run executes the steps in order and stops at the first failure.
func (r *runner) run() bool {
	log.Info().
		Str("template", r.params.TemplatePath).
		Int("wait_delay", r.params.WaitDelay).
		Int("retry_times", r.params.RetryTimes).
		Int("retry_interval", r.params.RetryInterval).
		Str("key", r.params.Key).
		Msg(logPrefix + " Starting character reset")

	if !r.pressKey() {
		return false
	}
	for i, s := range clickSteps {
		if !r.click(i+2, s) {
			return false
		}
	}

	log.Info().Msg(logPrefix + " Character reset finished")
	return true
}

// pressKey is step 1: open the menu. It is not retried.
func (r *runner) pressKey() bool {
	code := keymap.GetKeyCode(r.params.Key)
	if code < 0 {
		log.Error().Str("key", r.params.Key).Msg(logPrefix + " Step 1 failed: key cannot be posted")
		return false
	}

	log.Info().Int("step", 1).Str("key", r.params.Key).Int32("code", code).Msg(logPrefix + " Pressing key")
	if err := r.driver.ClickKey(code); err != nil {
		log.Error().Err(err).Int("step", 1).Msg(logPrefix + " Step 1 failed: press key")
		return false
	}

	r.sleep(r.params.waitDelay())

	if _, err := r.driver.Screencap(); err != nil {
		log.Error().Err(err).Int("step", 1).Msg(logPrefix + " Step 1 failed: refresh screenshot")
		return false
	}
	return true
}

// click is one of steps 2..5: poll recognition until a hit or until retry_times attempts are used.
func (r *runner) click(index int, s clickStep) bool {
	var override map[string]any
	if s.override != nil {
		override = s.override(r.params)
	}

	log.Info().Int("step", index).Str("node", s.node).Str("target", s.target).Msg(logPrefix + " Looking for target")

	var (
		last    image.Image
		lastBox image.Rectangle
	)
	for attempt := 1; attempt <= r.params.RetryTimes; attempt++ {
		l := log.With().
			Int("step", index).
			Str("node", s.node).
			Int("attempt", attempt).
			Int("retry_times", r.params.RetryTimes).
			Logger()

		box, img, err := r.attempt(s, override)
		if img != nil {
			last = img
		}
		if box != nil {
			lastBox = box.Rect()
		}

		switch {
		case err != nil:
			l.Error().Err(err).Msg(logPrefix + " Attempt failed")
		case box == nil:
			l.Warn().Str("target", s.target).Msg(logPrefix + " Target not found")
		default:
			l.Info().
				Int("x", box.X).Int("y", box.Y).Int("w", box.W).Int("h", box.H).
				Msg(logPrefix + " Target clicked")
			return true
		}

		if attempt < r.params.RetryTimes {
			r.sleep(r.params.retryInterval())
		}
	}

	log.Error().Int("step", index).Str("node", s.node).Int("retry_times", r.params.RetryTimes).
		Msg(logPrefix + " Max retries reached")
	r.saveSnapshot(s, last, lastBox)
	return false
}

// attempt takes one screenshot, recognises s.node on it, and clicks on a hit.
// A nil box with a nil error means the target was not on screen. A failure after a hit
// still returns the box.
func (r *runner) attempt(s clickStep, override map[string]any) (*Box, image.Image, error) {
	img, err := r.driver.Screencap()
	if err != nil {
		return nil, nil, err
	}

	box, err := r.driver.Recognize(s.node, img, override)
	if err != nil {
		return nil, img, err
	}
	if box == nil || box.W == 0 {
		return nil, img, nil
	}

	x, y := box.Center()
	if err := r.driver.Click(x, y); err != nil {
		return box, img, err
	}

	r.sleep(r.params.waitDelay())

	if _, err := r.driver.Screencap(); err != nil {
		return box, img, fmt.Errorf("refresh after click: %w", err)
	}
	if s.settle > 0 {
		r.sleep(s.settle)
	}
	return box, img, nil
}

// saveSnapshot writes the last screenshot of an exhausted step, outlining box when
// the target was found but could not be clicked.
func (r *runner) saveSnapshot(s clickStep, img image.Image, box image.Rectangle) {
	if !r.params.Debug || img == nil {
		return
	}
	label := fmt.Sprintf("%s: %s not found", s.name, s.node)
	if !box.Empty() {
		label = fmt.Sprintf("%s: %s not clicked", s.name, s.node)
	}
	path, err := debugimg.Save(r.params.DebugDir, s.name, debugimg.Annotate(img, label, box))
	if err != nil {
		log.Warn().Err(err).Msg(logPrefix + " Failed to save debug screenshot")
		return
	}
	log.Info().Str("path", path).Msg(logPrefix + " Saved debug screenshot")
}
