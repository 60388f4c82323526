// Package report renders dashboard exports.
package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
)

const (
	chartWidth  = 800
	chartHeight = 360

	marginTop    = 40
	marginBottom = 40
	marginSide   = 30
)

var (
	colBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colAxis       = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colBar        = color.RGBA{0x4a, 0x78, 0xc2, 0xff}
	colNoShow     = color.RGBA{0xd9, 0x53, 0x4f, 0xff}
	colCompleted  = color.RGBA{0x5c, 0xb8, 0x5c, 0xff}
	colText       = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// DailyChart draws appointments per day as a bar chart. Each bar stacks
// no-shows (bottom), completed, and the rest.
func DailyChart(title string, days []metrics.DayTotal) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(colBackground), image.Point{}, xdraw.Src)

	drawText(img, marginSide, 24, title, colText)

	baseY := chartHeight - marginBottom
	fillRect(img, marginSide, baseY, chartWidth-marginSide, baseY+1, colAxis)

	if len(days) == 0 {
		return img
	}

	peak := 1
	for _, d := range days {
		peak = max(peak, d.Total)
	}

	plotH := baseY - marginTop
	slot := (chartWidth - 2*marginSide) / len(days)
	barW := max(2, slot*2/3)
	labelEvery := max(1, len(days)/10)

	for i, d := range days {
		x0 := marginSide + i*slot + (slot-barW)/2
		x1 := x0 + barW

		y := baseY
		segment := func(n int, c color.Color) {
			h := n * plotH / peak
			fillRect(img, x0, y-h, x1, y, c)
			y -= h
		}

		segment(d.NoShows, colNoShow)
		segment(d.Completed, colCompleted)
		segment(d.Total-d.NoShows-d.Completed, colBar)

		if d.Total > 0 {
			drawText(img, x0, y-4, fmt.Sprint(d.Total), colText)
		}
		if i%labelEvery == 0 && len(d.Day) >= 10 {
			drawText(img, x0, baseY+16, d.Day[5:], colText)
		}
	}

	return img
}

// EncodeWebP encodes losslessly; charts are flat colour.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	if y1 <= y0 || x1 <= x0 {
		return
	}
	xdraw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, xdraw.Src)
}

func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
