package grid

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Layout constants for the rendered weekly grid.
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 70
	leftLabelsWidth = 110
	cellPaddingX    = 6
	cellPaddingY    = 4
	boxBorderRadius = 6.0
	shadowOffset    = 3.0
)

// Color scheme for the rendered week.
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	slotLabelColor = color.RGBA{110, 115, 120, 200}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	periodFillColor   = color.RGBA{133, 193, 85, 220}
	periodBorderColor = color.RGBA{106, 154, 68, 220}
	periodTextColor   = color.RGBA{20, 24, 28, 230}
	periodShadowColor = color.RGBA{0, 0, 0, 20}
)

// RenderPNG draws the placed grid as a PNG: one column per day, one row per
// slot, a rounded box with subject, teacher and room for each placed period.
func RenderPNG(g *Grid) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / float64(len(g.Days))
	rowHeight := float64(imageHeight-headerHeight) / float64(len(g.Slots))

	drawDayColumns(dc, g, dayWidth, rowHeight)
	drawDayHeaders(dc, g, dayWidth)
	drawSlotLabels(dc, g, rowHeight)
	drawPeriodBoxes(dc, g, dayWidth, rowHeight)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawDayColumns(dc *gg.Context, g *Grid, dayWidth, rowHeight float64) {
	for day := range g.Days {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth
		if day%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, float64(imageHeight-headerHeight))
		dc.Fill()

		dc.SetLineWidth(0.3)
		dc.SetColor(gridLineColor)
		for row := 0; row <= len(g.Slots); row++ {
			y := float64(headerHeight) + float64(row)*rowHeight
			dc.DrawLine(x, y, x+dayWidth, y)
			dc.Stroke()
		}
	}
}

func drawDayHeaders(dc *gg.Context, g *Grid, dayWidth float64) {
	dc.SetColor(headerColor)
	for day, name := range g.Days {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth + dayWidth/2
		dc.DrawStringAnchored(name, x, float64(headerHeight)/2, 0.5, 0.5)
	}
}

func drawSlotLabels(dc *gg.Context, g *Grid, rowHeight float64) {
	dc.SetColor(slotLabelColor)
	for row, label := range g.Slots {
		y := float64(headerHeight) + float64(row)*rowHeight + rowHeight/2
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawPeriodBoxes(dc *gg.Context, g *Grid, dayWidth, rowHeight float64) {
	for day := range g.Days {
		for row := range g.Slots {
			p := g.Cell(day, row)
			if p == nil {
				continue
			}
			x := float64(leftLabelsWidth) + float64(day)*dayWidth + cellPaddingX
			y := float64(headerHeight) + float64(row)*rowHeight + cellPaddingY
			w := dayWidth - 2*cellPaddingX
			h := rowHeight - 2*cellPaddingY

			dc.SetColor(periodShadowColor)
			dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, boxBorderRadius)
			dc.Fill()

			dc.SetColor(periodFillColor)
			dc.DrawRoundedRectangle(x, y, w, h, boxBorderRadius)
			dc.Fill()

			dc.SetColor(periodBorderColor)
			dc.SetLineWidth(1)
			dc.DrawRoundedRectangle(x, y, w, h, boxBorderRadius)
			dc.Stroke()

			dc.SetColor(periodTextColor)
			tx := x + 8
			ty := y + 16
			dc.DrawStringAnchored(truncate(p.SubjectName, 24), tx, ty, 0, 0)
			if p.TeacherName != "" {
				dc.DrawStringAnchored(truncate(p.TeacherName, 24), tx, ty+16, 0, 0)
			}
			if p.RoomName != nil && *p.RoomName != "" {
				dc.DrawStringAnchored(truncate(*p.RoomName, 24), tx, ty+32, 0, 0)
			}
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
