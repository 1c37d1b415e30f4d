package keymap

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	events []string
	failOn string
}

func (f *fakePoster) record(kind string, code int32) bool {
	ev := fmt.Sprintf("%s:%d", kind, code)
	f.events = append(f.events, ev)
	return ev != f.failOn
}

func (f *fakePoster) ClickKey(code int32) bool { return f.record("click", code) }
func (f *fakePoster) KeyDown(code int32) bool  { return f.record("down", code) }
func (f *fakePoster) KeyUp(code int32) bool    { return f.record("up", code) }

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	prev := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = prev })
	return &slept
}

func TestGetKeyCode(t *testing.T) {
	tests := []struct {
		name string
		want int32
	}{
		{"Menu", 27},
		{"Move_W", 0x57},
		{"OperatorSkill_3", 0x33},
		{"Operational", 0x77},
		{"SwitchTarget", VKUnsupported},
		{"NoSuchKey", VKInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetKeyCode(tt.name))
		})
	}
}

func TestParseKeyParam(t *testing.T) {
	p, err := parseKeyParam(`{"key":"Jump","duration":300}`)
	require.NoError(t, err)
	assert.Equal(t, "Jump", p.Key)
	assert.Equal(t, 300, p.Duration)

	p, err = parseKeyParam(`"{\"keys\":[\"Map\",\"Menu\"],\"interval\":50}"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Map", "Menu"}, p.Keys)
	assert.Equal(t, 50, p.Interval)

	_, err = parseKeyParam("")
	assert.Error(t, err)

	_, err = parseKeyParam(`{"key":"Jump","duration":-1}`)
	assert.Error(t, err)

	_, err = parseKeyParam(`[1,2]`)
	assert.Error(t, err)
}

func TestLongPress(t *testing.T) {
	slept := stubSleep(t)
	p := &fakePoster{}

	assert.True(t, longPress(p, VKSpace, 300*time.Millisecond))
	assert.Equal(t, []string{"down:32", "up:32"}, p.events)
	assert.Equal(t, []time.Duration{300 * time.Millisecond}, *slept)
}

func TestLongPressStopsWhenKeyDownFails(t *testing.T) {
	stubSleep(t)
	p := &fakePoster{failOn: "down:32"}

	assert.False(t, longPress(p, VKSpace, time.Second))
	assert.Equal(t, []string{"down:32"}, p.events)
}

func TestPressSequence(t *testing.T) {
	slept := stubSleep(t)
	p := &fakePoster{}

	ok := pressSequence(p, []int32{VKEscape, VKF1, VKTab}, 50*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, []string{"click:27", "click:112", "click:9"}, p.events)
	assert.Len(t, *slept, 2)
}

func TestPressSequenceAbortsOnFailure(t *testing.T) {
	stubSleep(t)
	p := &fakePoster{failOn: "click:112"}

	assert.False(t, pressSequence(p, []int32{VKEscape, VKF1, VKTab}, 0))
	assert.Equal(t, []string{"click:27", "click:112"}, p.events)
}

func TestRunWithShiftReleasesBothKeys(t *testing.T) {
	slept := stubSleep(t)
	p := &fakePoster{}

	assert.True(t, runWithShift(p, Win32KeyEnum["Move_W"], 2*time.Second))
	assert.Equal(t, []string{"down:87", "down:16", "up:16", "up:87"}, p.events)
	assert.Equal(t, []time.Duration{2 * time.Second}, *slept)
}

func TestRunWithShiftReleasesOnDashFailure(t *testing.T) {
	slept := stubSleep(t)
	p := &fakePoster{failOn: "down:16"}

	assert.False(t, runWithShift(p, Win32KeyEnum["Move_W"], time.Second))
	assert.Equal(t, []string{"down:87", "down:16", "up:16", "up:87"}, p.events)
	assert.Empty(t, *slept)
}
