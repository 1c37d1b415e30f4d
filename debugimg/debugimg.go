// Package debugimg renders and saves annotated screenshots for troubleshooting
// recognition steps that did not find their target.
package debugimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	BoxColor   = color.RGBA{255, 0, 0, 255}
	LabelColor = color.RGBA{255, 255, 0, 255}
)

// Clone 将任意图像复制为原点在 (0,0) 的 *image.RGBA，不修改源图像。
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// DrawRect outlines r with the given thickness, clipped to dst.
func DrawRect(dst *image.RGBA, r image.Rectangle, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), // top
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), // left
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	for _, e := range edges {
		e = e.Intersect(dst.Bounds())
		if e.Empty() {
			continue
		}
		draw.Draw(dst, e, u, image.Point{}, draw.Src)
	}
}

// DrawLabel writes ASCII text with its baseline at (x, y).
func DrawLabel(dst *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Annotate returns a copy of img with label in the top-left corner and, if box is
// non-empty, the box outlined.
func Annotate(img image.Image, label string, box image.Rectangle) *image.RGBA {
	dst := Clone(img)
	if !box.Empty() {
		DrawRect(dst, box.Sub(img.Bounds().Min), BoxColor, 2)
	}
	if label != "" {
		DrawLabel(dst, 4, 14, label, LabelColor)
	}
	return dst
}

// Save 保存带毫秒时间戳的 PNG，返回写入的路径。
func Save(dir, name string, img image.Image) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create debug dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, time.Now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create debug image: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode debug image: %w", err)
	}
	return path, nil
}
