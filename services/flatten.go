package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormatSpan tags a codepoint offset range of flattened text with the
// inline formatting active over it. Zero values mean "not set".
type FormatSpan struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Font      string `json:"font,omitempty"`
	Size      string `json:"size,omitempty"` // raw CSS value, e.g. "14px"
	Color     string `json:"color,omitempty"`
	Align     string `json:"align,omitempty"` // left, center, right
}

// FlatContent is the output of Flatten: plain text plus the formatting
// spans that cover it.
type FlatContent struct {
	Text  string
	Spans []FormatSpan
}

// Heading sizes for h1-h3, largest first. Stored with their unit; the PDF
// renderer parses the leading integer.
var headingSizes = [3]string{"24px", "20px", "16px"}

// inlineFormat is the formatting state inherited down the node tree. Child
// elements merge onto a copy, so nested tags accumulate attributes.
type inlineFormat struct {
	bold      bool
	italic    bool
	underline bool
	font      string
	size      string
	color     string
	align     string
}

func (f inlineFormat) active() bool {
	return f.bold || f.italic || f.underline ||
		f.font != "" || f.size != "" || f.color != "" || f.align != ""
}

// Flatten parses an HTML fragment from the editing surface into plain text
// plus formatting spans. Block-level tags produce line breaks and bullet
// prefixes; inline tags and style attributes become spans over the exact
// offset range of each text node. The input is treated as inert markup:
// nothing is executed or fetched. Malformed input degrades to whatever
// nodes the parser recovers rather than failing.
func Flatten(src string) FlatContent {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return FlatContent{}
	}

	fl := &flattener{}
	for _, n := range nodes {
		fl.walk(n, inlineFormat{})
	}

	return fl.finish()
}

type flattener struct {
	text   strings.Builder
	offset int // codepoint offset into text
	spans  []FormatSpan
}

func (fl *flattener) append(s string) {
	fl.text.WriteString(s)
	fl.offset += utf8.RuneCountInString(s)
}

func (fl *flattener) walk(n *html.Node, inherited inlineFormat) {
	switch n.Type {
	case html.TextNode:
		fl.textNode(n, inherited)
	case html.ElementNode:
		fl.element(n, inherited)
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			fl.walk(c, inherited)
		}
	}
	// Comments, doctypes and anything unrecognized are skipped.
}

func (fl *flattener) textNode(n *html.Node, format inlineFormat) {
	content := n.Data
	if content == "" {
		return
	}
	// Inter-tag formatting whitespace (indentation newlines) is noise from
	// the serializer, not authored content.
	if strings.TrimSpace(content) == "" && strings.ContainsRune(content, '\n') {
		return
	}

	start := fl.offset
	fl.append(content)
	if format.active() {
		fl.spans = append(fl.spans, FormatSpan{
			Start:     start,
			End:       fl.offset,
			Bold:      format.bold,
			Italic:    format.italic,
			Underline: format.underline,
			Font:      format.font,
			Size:      format.size,
			Color:     format.color,
			Align:     format.align,
		})
	}
}

func (fl *flattener) element(n *html.Node, inherited inlineFormat) {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Iframe, atom.Object, atom.Img:
		return
	case atom.Br:
		fl.append("\n")
		return
	}

	format := mergeElementFormat(n, inherited)

	switch n.DataAtom {
	case atom.P:
		if fl.offset > 0 {
			fl.append("\n\n")
		}
		fl.children(n, format)
	case atom.Div, atom.Section, atom.Article, atom.Blockquote, atom.Table, atom.Tr:
		if fl.offset > 0 {
			fl.append("\n")
		}
		fl.children(n, format)
	case atom.H1, atom.H2, atom.H3:
		level := int(n.Data[1] - '0')
		format.bold = true
		format.size = headingSizes[level-1]
		if fl.offset > 0 {
			fl.append("\n\n")
		}
		fl.children(n, format)
		fl.append("\n")
	case atom.Li:
		fl.append("• ")
		fl.children(n, format)
		fl.append("\n")
	case atom.Ul, atom.Ol:
		fl.children(n, format)
		fl.append("\n")
	default:
		// Inline or unrecognized element: contribute children only.
		fl.children(n, format)
	}
}

func (fl *flattener) children(n *html.Node, format inlineFormat) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fl.walk(c, format)
	}
}

// finish trims the output text and shifts span offsets to match.
func (fl *flattener) finish() FlatContent {
	raw := fl.text.String()
	trimmed := strings.TrimSpace(raw)
	if trimmed == raw {
		return FlatContent{Text: raw, Spans: fl.spans}
	}

	// Same cutset as TrimSpace above, so span shifts line up with the trim
	// even for exotic leading whitespace such as non-breaking spaces.
	lead := utf8.RuneCountInString(raw) - utf8.RuneCountInString(strings.TrimLeftFunc(raw, unicode.IsSpace))
	length := utf8.RuneCountInString(trimmed)

	spans := fl.spans[:0]
	for _, s := range fl.spans {
		s.Start -= lead
		s.End -= lead
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > length {
			s.End = length
		}
		if s.End > s.Start {
			spans = append(spans, s)
		}
	}
	return FlatContent{Text: trimmed, Spans: spans}
}

// mergeElementFormat layers the element's own formatting on top of the
// inherited state. Attributes add to (or override) ancestors, never reset
// them wholesale.
func mergeElementFormat(n *html.Node, format inlineFormat) inlineFormat {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		format.bold = true
	case atom.I, atom.Em:
		format.italic = true
	case atom.U:
		format.underline = true
	case atom.Font:
		if v := attrValue(n, "face"); v != "" {
			format.font = v
		}
		if v := attrValue(n, "size"); v != "" {
			format.size = v
		}
		if v := attrValue(n, "color"); v != "" {
			format.color = v
		}
	}

	if v := attrValue(n, "align"); v != "" {
		format.align = strings.ToLower(v)
	}
	if style := attrValue(n, "style"); style != "" {
		applyStyle(&format, style)
	}
	return format
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// applyStyle folds the recognized declarations of an inline style attribute
// into the format. Unknown declarations are ignored.
func applyStyle(format *inlineFormat, style string) {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch name {
		case "font-weight":
			format.bold = value == "bold" || value == "bolder" || value >= "600" && len(value) == 3
		case "font-style":
			if value == "italic" || value == "oblique" {
				format.italic = true
			}
		case "text-decoration", "text-decoration-line":
			if strings.Contains(value, "underline") {
				format.underline = true
			}
		case "font-family":
			format.font = strings.Trim(strings.Split(value, ",")[0], `"' `)
		case "font-size":
			format.size = value
		case "color":
			format.color = value
		case "text-align":
			format.align = strings.ToLower(value)
		}
	}
}
