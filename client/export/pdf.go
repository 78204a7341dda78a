// Package export renders a single task as a printable PDF report.
package export

import (
	"bytes"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/tasklite/backend/domain"
)

const (
	pageWidth  = 210.0
	labelX     = 20.0
	valueX     = 55.0
	dateLayout = "Monday, January 2, 2006"
)

type rgb struct{ r, g, b int }

var (
	headerColor = rgb{41, 98, 255}
	mutedColor  = rgb{75, 85, 99}
	alertColor  = rgb{239, 68, 68}

	statusColors = map[domain.Status]rgb{
		domain.StatusToDo:       {251, 146, 60},
		domain.StatusInProgress: {59, 130, 246},
		domain.StatusDone:       {34, 197, 94},
	}
	priorityColors = map[domain.Priority]rgb{
		domain.PriorityHigh:   {239, 68, 68},
		domain.PriorityMedium: {245, 158, 11},
		domain.PriorityLow:    {34, 197, 94},
	}
	fallbackBadge = rgb{156, 163, 175}
)

// RenderPDF produces the task detail report. It never panics on odd input;
// malformed dates degrade to a placeholder and any renderer error is
// returned to the caller.
func RenderPDF(task domain.Task) ([]byte, error) {
	return renderPDF(task, time.Now())
}

// Filename suggests a download name derived from the task title.
func Filename(task domain.Task) string {
	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, task.Title)
	return "task-" + sanitized + ".pdf"
}

func renderPDF(task domain.Task, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header band
	setFill(pdf, headerColor)
	pdf.Rect(0, 0, pageWidth, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(labelX, 25, "TaskLite")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(labelX, 35, "Task Details Report")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(labelX, 60, "Task Information")
	setDraw(pdf, mutedColor)
	pdf.SetLineWidth(0.5)
	pdf.Line(labelX, 65, 190, 65)

	y := 80.0

	y = field(pdf, y, "Title:", task.Title)

	description := task.Description
	if description == "" {
		description = "No description"
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(labelX, y, "Description:")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(labelX, y+4)
	pdf.MultiCell(150, 6, description, "", "L", false)
	y = pdf.GetY() + 10

	y = badge(pdf, y, "Status:", string(task.Status), badgeColor(statusColors, task.Status))
	y = badge(pdf, y, "Priority:", string(task.Priority), badgeColor(priorityColors, task.Priority))

	y = field(pdf, y, "Due Date:", formatDate(task.DueDate))

	if task.Overdue(now) {
		setText(pdf, alertColor)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(labelX, y, "This task is overdue!")
		pdf.SetTextColor(0, 0, 0)
		y += 15
	}

	if !task.CreatedAt.IsZero() {
		y = field(pdf, y, "Created:", formatDate(task.CreatedAt))
	}
	if !task.UpdatedAt.IsZero() && !task.UpdatedAt.Equal(task.CreatedAt) {
		y = field(pdf, y, "Last Updated:", formatDate(task.UpdatedAt))
	}

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, mutedColor)
	pdf.Text(labelX, pageHeight-20, "Generated by TaskLite")
	pdf.Text(labelX, pageHeight-10, "Generated on: "+now.Format(time.RFC1123))

	setDraw(pdf, mutedColor)
	pdf.SetLineWidth(1)
	pdf.Rect(15, 45, 180, pageHeight-80, "D")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func field(pdf *fpdf.Fpdf, y float64, label, value string) float64 {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(labelX, y, label)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(valueX, y, value)
	return y + 15
}

func badge(pdf *fpdf.Fpdf, y float64, label, value string, color rgb) float64 {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(labelX, y, label)

	setFill(pdf, color)
	width := float64(len(value))*2.2 + 6
	pdf.RoundedRect(valueX-3, y-6, width, 10, 2, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(valueX, y, value)
	pdf.SetTextColor(0, 0, 0)
	return y + 18
}

func badgeColor[K comparable](colors map[K]rgb, key K) rgb {
	if color, ok := colors[key]; ok {
		return color
	}
	return fallbackBadge
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "No date"
	}
	return t.Format(dateLayout)
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
