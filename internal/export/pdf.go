package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/sadopc/daytask/internal/store"
)

// Report geometry, in millimetres on A4 portrait.
const (
	pdfMargin     = 10.0
	pdfLineHeight = 6.0
	pdfIndent     = 2.0
)

// reportLine is one drawn line of text, kept so the layout can be inspected.
type reportLine struct {
	Page int
	Y    float64
	Bold bool
	Text string
}

type report struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	pageWidth  float64
	pageHeight float64
	y          float64
	lines      []reportLine
}

func newReport() *report {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCreator("daytask", true)
	pdf.SetTitle("Tasks Report", true)
	w, h := pdf.GetPageSize()
	r := &report{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		pageWidth:  w,
		pageHeight: h,
	}
	r.newPage()
	return r
}

func (r *report) newPage() {
	r.pdf.AddPage()
	r.y = pdfMargin
}

func (r *report) bottom() float64 {
	return r.pageHeight - pdfMargin
}

func (r *report) text(x float64, s string, bold bool) {
	encoded := r.tr(s)
	r.pdf.Text(x, r.y, encoded)
	r.lines = append(r.lines, reportLine{Page: r.pdf.PageNo(), Y: r.y, Bold: bold, Text: printed(encoded)})
}

func (r *report) rule(gray int) {
	r.pdf.SetDrawColor(gray, gray, gray)
	r.pdf.Line(pdfMargin, r.y, r.pageWidth-pdfMargin, r.y)
}

// wrapped draws s wrapped to the content width. The whole group moves to a
// new page when it would cross the bottom margin, and each line is checked
// again so a group taller than a page still breaks cleanly.
func (r *report) wrapped(s string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, 9)

	width := r.pageWidth - 2*pdfMargin - 2*pdfIndent
	parts := r.split(s, width)

	if r.y+float64(len(parts))*pdfLineHeight > r.bottom() {
		r.newPage()
	}
	for _, p := range parts {
		if r.y+pdfLineHeight > r.bottom() {
			r.newPage()
		}
		encoded := latin1(p)
		r.pdf.Text(pdfMargin+pdfIndent, r.y, encoded)
		r.lines = append(r.lines, reportLine{Page: r.pdf.PageNo(), Y: r.y, Bold: bold, Text: printed(encoded)})
		r.y += pdfLineHeight
	}
}

// split wraps s with the current font. Core fonts only have widths for single
// byte code points, so the cp1252 bytes are carried through SplitText as runes.
func (r *report) split(s string, width float64) []string {
	encoded := []byte(r.tr(s))
	runes := make([]rune, len(encoded))
	for i, b := range encoded {
		runes[i] = rune(b)
	}
	parts := r.pdf.SplitText(string(runes), width)
	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}

func latin1(s string) string {
	b := make([]byte, 0, len(s))
	for _, c := range s {
		b = append(b, byte(c))
	}
	return string(b)
}

// printed decodes cp1252 text back to UTF-8. Characters the core fonts cannot
// show were already replaced by the translator.
func printed(encoded string) string {
	s, err := charmap.Windows1252.NewDecoder().String(encoded)
	if err != nil {
		return encoded
	}
	return s
}

func buildReport(tasks []store.Task, now time.Time) *report {
	r := newReport()

	r.pdf.SetFont("Helvetica", "", 18)
	r.text(pdfMargin, "Tasks Report", false)
	r.y += 8

	r.pdf.SetFont("Helvetica", "", 10)
	r.text(pdfMargin, "Generated: "+now.Format("02/01/2006, 15:04:05"), false)
	r.y += 8
	r.text(pdfMargin, fmt.Sprintf("Total Tasks: %d", len(tasks)), false)
	r.y += 10

	r.pdf.SetLineWidth(0.2)
	r.rule(200)
	r.y += 5

	for i, t := range sortAscending(tasks) {
		r.wrapped(fmt.Sprintf("%d. %s", i+1, t.Title), true)
		r.wrapped("Date: "+FormatDate(t.Date)+" | "+timeRange(t), false)
		if t.TaskDetail != "" {
			r.wrapped("Detail: "+t.TaskDetail, false)
		}

		r.y += 3
		if r.y > r.bottom()-5 {
			r.newPage()
		}
		r.rule(220)
		r.y += 4
	}
	return r
}

func timeRange(t store.Task) string {
	if t.StopTime != "" {
		return "Start: " + t.StartTime + " | Stop: " + t.StopTime
	}
	return "Time: " + t.StartTime
}

// WritePDF renders a paginated "Tasks Report", oldest task first.
func WritePDF(w io.Writer, tasks []store.Task, now time.Time) error {
	r := buildReport(tasks, now)
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
