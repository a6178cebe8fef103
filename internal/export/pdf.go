// Package export writes packing results to PDF floor plans, QR-coded item
// labels and Excel reports.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/roomfit/internal/model"
)

// itemColor represents an RGB fill for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// plan is the room geometry needed to draw a result.
type plan struct {
	room           model.Polygon
	door           model.Door
	obstruction    model.Polygon
	hasObstruction bool
}

func newPlan(req model.Request) (plan, error) {
	room, err := model.NewPolygon(req.Boundary)
	if err != nil {
		return plan{}, fmt.Errorf("room boundary: %w", err)
	}
	door, err := model.NewDoor(req.Door.A, req.Door.B, req.Door.OpenInward)
	if err != nil {
		return plan{}, fmt.Errorf("door: %w", err)
	}
	p := plan{room: room, door: door}
	p.obstruction, p.hasObstruction = door.ObstructionArea(room)
	return p, nil
}

// viewport maps room millimetres onto the page. Room y grows upward, page y
// grows downward.
type viewport struct {
	scale            float64
	offsetX, offsetY float64
	min, max         model.Point
}

func (v viewport) x(x float64) float64 { return v.offsetX + (x-v.min.X)*v.scale }
func (v viewport) y(y float64) float64 { return v.offsetY + (v.max.Y-y)*v.scale }

func (v viewport) points(pts []model.Point) []fpdf.PointType {
	out := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = fpdf.PointType{X: v.x(p.X), Y: v.y(p.Y)}
	}
	return out
}

// ExportPDF generates a PDF with the floor plan of the packed room followed
// by a summary page listing placements, unplaced items and the settings used.
func ExportPDF(path string, req model.Request, result model.Result, settings model.Settings) error {
	pl, err := newPlan(req)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, pl, result)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room, door and placed items to scale.
func renderPlanPage(pdf *fpdf.Fpdf, pl plan, result model.Result) {
	min, max := pl.room.Bounds()
	roomW := max.X - min.X
	roomH := max.Y - min.Y

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Floor plan (%.0f x %.0f mm)", roomW, roomH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d placed, %d unplaced | Room area: %.0f mm² | Fill: %.1f%% | %s",
		len(result.Placements), len(result.Unplaced), result.RoomArea, result.FillRatio(), feasibleText(result.Feasible))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/roomW, drawHeight/roomH)

	canvasW := roomW * scale
	canvasH := roomH * scale
	vp := viewport{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		min:     min,
		max:     max,
	}

	// Floor
	pdf.SetFillColor(235, 230, 220)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.8)
	pdf.Polygon(vp.points(pl.room.Points()), "FD")

	if pl.hasObstruction {
		oMin, oMax := pl.obstruction.Bounds()
		zx, zy := vp.x(oMin.X), vp.y(oMax.Y)
		zw := (oMax.X - oMin.X) * scale
		zh := (oMax.Y - oMin.Y) * scale
		pdf.SetFillColor(255, 220, 220)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)
	}

	// Door opening
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(1.5)
	pdf.Line(vp.x(pl.door.A.X), vp.y(pl.door.A.Y), vp.x(pl.door.B.X), vp.y(pl.door.B.Y))

	for i, p := range result.Placements {
		col := itemColors[i%len(itemColors)]
		pw := p.PlacedWidth() * scale
		ph := p.PlacedLength() * scale
		px := vp.x(p.Center.X - p.PlacedWidth()/2)
		py := vp.y(p.Center.Y + p.PlacedLength()/2)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			name := p.Item.Name
			dims := fmt.Sprintf("%.0fx%.0f", p.Item.Length, p.Item.Width)
			nameW := pdf.GetStringWidth(name)
			dimsW := pdf.GetStringWidth(dims)

			if nameW < pw-2 {
				pdf.SetXY(px+(pw-nameW)/2, py+ph/2-4)
				pdf.CellFormat(nameW, 4, name, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, roomW, roomH, vp.offsetX, vp.offsetY, canvasW, canvasH)
	drawItemsLegend(pdf, result, vp.offsetY+canvasH+6)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark the door swing.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and depth labels outside the room outline.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, roomW, roomH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", roomW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", roomH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend renders a compact legend of placed items below the plan.
func drawItemsLegend(pdf *fpdf.Fpdf, result model.Result, startY float64) {
	if len(result.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range result.Placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Item.Name, p.Item.Length, p.Item.Width)
		if p.Angle == 90 {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the placement table, unplaced items and settings.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.Result, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Room Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Result", feasibleText(result.Feasible)},
		{"Items Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Unplaced Items", fmt.Sprintf("%d", len(result.Unplaced))},
		{"Room Area", fmt.Sprintf("%.0f mm²", result.RoomArea)},
		{"Fill Ratio", fmt.Sprintf("%.1f%%", result.FillRatio())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	if len(result.Placements) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{15, 70, 50, 60, 25, 30}
		headers := []string{"#", "Item", "Length x Width", "Center", "Angle", "Position"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, p := range result.Placements {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			position := "wall"
			if p.Interior {
				position = "interior"
			}
			rowData := []string{
				fmt.Sprintf("%d", i+1),
				p.Item.Name,
				fmt.Sprintf("%.0f x %.0f mm", p.Item.Length, p.Item.Width),
				fmt.Sprintf("(%.1f, %.1f)", p.Center.X, p.Center.Y),
				fmt.Sprintf("%d\xb0", p.Angle),
				position,
			}

			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			xPos = marginLeft
			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, it := range result.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f mm", it.Name, it.Length, it.Width)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Packing Settings", "", 0, "L", false, 0, "")
	y += 9

	fallback := "off"
	if settings.InteriorFallback {
		fallback = fmt.Sprintf("on (%.0f mm grid)", settings.InteriorStep)
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Wall Step", fmt.Sprintf("%.1f mm", settings.Step)},
		{"Probe Offset", fmt.Sprintf("%.1f mm", settings.ProbeOffset)},
		{"Interior Fallback", fallback},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by roomfit - Room Layout Planner", "", 0, "C", false, 0, "")
}

func feasibleText(feasible bool) string {
	if feasible {
		return "Feasible"
	}
	return "Not feasible"
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
