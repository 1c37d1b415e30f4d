package resetposition

import (
	"errors"
	"fmt"
	"image"

	"github.com/MaaXYZ/maa-framework-go/v4"
)

// Box is a recognition hit in screen coordinates.
type Box struct {
	X, Y, W, H int
}

// Center is the click point used for a hit, using integer halves.
func (b Box) Center() (int32, int32) {
	return int32(b.X + b.W/2), int32(b.Y + b.H/2)
}

func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Driver is everything the reset routine needs from the host framework.
type Driver interface {
	ClickKey(key int32) error
	// Screencap refreshes the controller's screenshot cache and returns the new image.
	Screencap() (image.Image, error)
	// Recognize runs a pipeline node against img. A nil Box with a nil error is a miss.
	Recognize(node string, img image.Image, override map[string]any) (*Box, error)
	Click(x, y int32) error
}

var errJobFailed = errors.New("job did not complete")

type maaDriver struct {
	ctx *maa.Context
}

func newMaaDriver(ctx *maa.Context) *maaDriver {
	return &maaDriver{ctx: ctx}
}

func (d *maaDriver) controller() (*maa.Controller, error) {
	tasker := d.ctx.GetTasker()
	if tasker == nil {
		return nil, errors.New("tasker is nil")
	}
	ctrl := tasker.GetController()
	if ctrl == nil {
		return nil, errors.New("controller is nil")
	}
	return ctrl, nil
}

func (d *maaDriver) ClickKey(key int32) error {
	ctrl, err := d.controller()
	if err != nil {
		return err
	}
	if !ctrl.PostClickKey(key).Wait().Done() {
		return fmt.Errorf("click key %d: %w", key, errJobFailed)
	}
	return nil
}

func (d *maaDriver) Screencap() (image.Image, error) {
	ctrl, err := d.controller()
	if err != nil {
		return nil, err
	}
	if !ctrl.PostScreencap().Wait().Done() {
		return nil, fmt.Errorf("screencap: %w", errJobFailed)
	}
	img, err := ctrl.CacheImage()
	if err != nil {
		return nil, fmt.Errorf("cache image: %w", err)
	}
	if img == nil {
		return nil, errors.New("cache image is nil")
	}
	return img, nil
}

func (d *maaDriver) Recognize(node string, img image.Image, override map[string]any) (*Box, error) {
	var (
		detail *maa.RecognitionDetail
		err    error
	)
	if len(override) > 0 {
		detail, err = d.ctx.RunRecognition(node, img, override)
	} else {
		detail, err = d.ctx.RunRecognition(node, img)
	}
	if err != nil {
		return nil, fmt.Errorf("run recognition %s: %w", node, err)
	}
	if detail == nil || !detail.Hit {
		return nil, nil
	}
	return &Box{
		X: detail.Box.X(),
		Y: detail.Box.Y(),
		W: detail.Box.Width(),
		H: detail.Box.Height(),
	}, nil
}

func (d *maaDriver) Click(x, y int32) error {
	ctrl, err := d.controller()
	if err != nil {
		return err
	}
	if !ctrl.PostClick(x, y).Wait().Done() {
		return fmt.Errorf("click (%d, %d): %w", x, y, errJobFailed)
	}
	return nil
}
