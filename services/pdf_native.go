package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	gofpdf "github.com/lvillar/gofpdf"

	"foreclosure_flow_go/models"
)

// PDFOptions contains page options for PDF generation. Margins are in
// points (72 = 1 inch).
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // letter, legal, A4
	MarginTop       int
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns default options for legal documents
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: models.OrientationPortrait,
		PageSize:        models.PageSizeLetter,
		MarginTop:       72,
		MarginBottom:    72,
		MarginLeft:      72,
		MarginRight:     72,
	}
}

// Layout constants, in points.
const (
	defaultFontSize = 12.0
	lineHeight      = 16.0
	blankLineHeight = 10.0
)

// lineFormat is the concrete formatting applied to one physical line.
type lineFormat struct {
	family string
	style  string // combination of B, I, U
	size   float64
	r, g, b int
	align  string // left, center, right
}

func defaultLineFormat() lineFormat {
	return lineFormat{family: "Times", size: defaultFontSize, align: "left"}
}

// measureFunc returns the rendered width in points of s under f.
type measureFunc func(s string, f lineFormat) float64

// layoutLine is a positioned physical line produced by pagination.
type layoutLine struct {
	text   string
	format lineFormat
	y      float64 // offset from the top margin
}

// layoutPage is one page worth of physical lines.
type layoutPage struct {
	lines []layoutLine
}

// paginate lays the flattened text onto pages. Logical lines (split on \n)
// are wrapped to the usable width; each physical line takes the formatting
// of the first span containing its starting offset. Blank logical lines
// advance the cursor without drawing. The running offset counts every
// physical line's codepoints plus one for the consumed newline or wrap
// boundary, keeping span lookups aligned across pages.
func paginate(text string, spans []FormatSpan, usableW, usableH float64, measure measureFunc) []layoutPage {
	pages := []layoutPage{{}}
	cursor := 0.0
	offset := 0

	for _, logical := range strings.Split(text, "\n") {
		if strings.TrimSpace(logical) == "" {
			cursor += blankLineHeight
			offset += utf8.RuneCountInString(logical) + 1
			continue
		}

		remaining := logical
		for remaining != "" {
			format := formatAt(spans, offset)
			chunk, rest := fitLine(remaining, usableW, format, measure)

			if cursor+lineHeight > usableH {
				pages = append(pages, layoutPage{})
				cursor = 0
			}
			page := &pages[len(pages)-1]
			page.lines = append(page.lines, layoutLine{text: chunk, format: format, y: cursor})

			cursor += lineHeight
			offset += utf8.RuneCountInString(chunk) + 1
			remaining = rest
		}
	}

	return pages
}

// formatAt resolves the formatting for a physical line starting at the
// given text offset: the first span whose range contains the offset wins,
// ties broken by encounter order.
func formatAt(spans []FormatSpan, offset int) lineFormat {
	format := defaultLineFormat()
	for _, s := range spans {
		if offset < s.Start || offset >= s.End {
			continue
		}
		if s.Bold {
			format.style += "B"
		}
		if s.Italic {
			format.style += "I"
		}
		if s.Underline {
			format.style += "U"
		}
		if s.Font != "" {
			format.family = mapFontFamily(s.Font)
		}
		if size, ok := parseFontSize(s.Size); ok {
			format.size = size
		}
		if r, g, b, ok := parseHexColor(s.Color); ok {
			format.r, format.g, format.b = r, g, b
		}
		switch s.Align {
		case "left", "center", "right":
			format.align = s.Align
		}
		break
	}
	return format
}

// parseFontSize extracts the leading integer of a CSS size value ("14px"
// -> 14). A value with no leading digits leaves the size unchanged.
func parseFontSize(v string) (float64, bool) {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(v[:i])
	if err != nil || n <= 0 {
		return 0, false
	}
	return float64(n), true
}

// parseHexColor parses #rgb and #rrggbb colors. Anything else resets to
// the default black.
func parseHexColor(v string) (r, g, b int, ok bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16), int(n >> 8 & 0xff), int(n & 0xff), true
}

// mapFontFamily maps a CSS font family to one of the core PDF fonts.
func mapFontFamily(font string) string {
	f := strings.ToLower(font)
	switch {
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"):
		return "Courier"
	case strings.Contains(f, "times"), strings.Contains(f, "serif"):
		return "Times"
	default:
		return "Helvetica"
	}
}

// fitLine returns the longest prefix of s that fits in maxW, preferring to
// break at spaces, and the remainder with its leading break consumed.
func fitLine(s string, maxW float64, format lineFormat, measure measureFunc) (string, string) {
	if measure(s, format) <= maxW {
		return s, ""
	}

	words := strings.Split(s, " ")
	line := ""
	for i, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate, format) > maxW && line != "" {
			return line, strings.Join(words[i:], " ")
		}
		line = candidate
	}

	// Single word wider than the page: hard-break by runes.
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if measure(string(runes[:i+1]), format) > maxW {
			return string(runes[:i]), string(runes[i:])
		}
	}
	return s, ""
}

func pageSizeName(size string) string {
	switch size {
	case models.PageSizeLegal:
		return "Legal"
	case models.PageSizeA4:
		return "A4"
	default:
		return "Letter"
	}
}

func orientationCode(orientation string) string {
	if orientation == models.OrientationLandscape {
		return "L"
	}
	return "P"
}

func newDocumentPDF(opts PDFOptions) *gofpdf.Fpdf {
	pdf := gofpdf.New(orientationCode(opts.PageOrientation), "pt", pageSizeName(opts.PageSize), "")
	pdf.SetMargins(float64(opts.MarginLeft), float64(opts.MarginTop), float64(opts.MarginRight))
	pdf.SetAutoPageBreak(false, float64(opts.MarginBottom))
	return pdf
}

// RenderPDF paginates flattened text with its formatting spans and draws it
// to PDF bytes. Rendering is synchronous and CPU-bound; it performs no I/O.
func RenderPDF(text string, spans []FormatSpan, opts PDFOptions) ([]byte, error) {
	pdf := newDocumentPDF(opts)

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - float64(opts.MarginLeft) - float64(opts.MarginRight)
	usableH := pageH - float64(opts.MarginTop) - float64(opts.MarginBottom)

	measure := func(s string, f lineFormat) float64 {
		pdf.SetFont(f.family, strings.ReplaceAll(f.style, "U", ""), f.size)
		return pdf.GetStringWidth(s)
	}

	pages := paginate(text, spans, usableW, usableH, measure)

	left := float64(opts.MarginLeft)
	top := float64(opts.MarginTop)
	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.lines {
			f := line.format
			pdf.SetFont(f.family, f.style, f.size)
			pdf.SetTextColor(f.r, f.g, f.b)

			x := left
			switch f.align {
			case "center":
				x = left + (usableW-pdf.GetStringWidth(line.text))/2
			case "right":
				x = left + usableW - pdf.GetStringWidth(line.text)
			}
			pdf.Text(x, top+line.y+f.size, line.text)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to render PDF: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCaseSummaryPDF renders a fixed-layout summary of the case's key
// fields. This is the fallback path when a document has no template or
// spans; only the notes section can overflow onto further pages.
func RenderCaseSummaryPDF(caseRecord *models.Case, f Formatter, opts PDFOptions) ([]byte, error) {
	pdf := newDocumentPDF(opts)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - float64(opts.MarginLeft) - float64(opts.MarginRight)
	usableH := pageH - float64(opts.MarginTop) - float64(opts.MarginBottom)
	left := float64(opts.MarginLeft)
	top := float64(opts.MarginTop)
	y := 0.0

	writeLine := func(style string, size float64, s string) {
		if y+lineHeight > usableH {
			pdf.AddPage()
			y = 0
		}
		pdf.SetFont("Times", style, size)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(left, top+y+size, s)
		y += lineHeight
	}
	writeField := func(label, value string) {
		if value == "" {
			value = MissingValue
		}
		writeLine("B", defaultFontSize, label)
		writeLine("", defaultFontSize, value)
		y += blankLineHeight / 2
	}

	title := "Case Summary"
	if caseRecord.FileNumber != "" {
		title = "Case Summary - " + caseRecord.FileNumber
	}
	writeLine("B", 16, title)
	y += blankLineHeight

	writeField("Status", models.StatusDisplayName(caseRecord.Status))
	if caseRecord.Property != nil {
		address := caseRecord.Property.Address
		if caseRecord.Property.City != "" {
			address += ", " + caseRecord.Property.City
		}
		writeField("Property", address)
	} else {
		writeField("Property", "")
	}

	if m := caseRecord.Mortgage; m != nil {
		writeField("Mortgage", fmt.Sprintf("Reg. %s, balance %s, per diem %s",
			m.RegistrationNumber, f.Amount(m.CurrentBalance), f.Amount(m.PerDiemInterest)))
	} else {
		writeField("Mortgage", "")
	}

	for _, link := range caseRecord.Parties {
		writeField(link.Party.PartyType, link.Party.Name)
	}

	writeLine("B", defaultFontSize, "Notes")
	notes := caseRecord.Notes
	if notes == "" {
		notes = MissingValue
	}
	measure := func(s string, lf lineFormat) float64 {
		pdf.SetFont(lf.family, "", lf.size)
		return pdf.GetStringWidth(s)
	}
	plain := defaultLineFormat()
	for _, logical := range strings.Split(notes, "\n") {
		if strings.TrimSpace(logical) == "" {
			y += blankLineHeight
			continue
		}
		remaining := logical
		for remaining != "" {
			chunk, rest := fitLine(remaining, usableW, plain, measure)
			writeLine("", defaultFontSize, chunk)
			remaining = rest
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to render case summary: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render case summary: %w", err)
	}
	return buf.Bytes(), nil
}
