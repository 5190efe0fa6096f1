package services

import (
	"regexp"
	"sort"
	"strings"
)

// Substitute replaces every literal occurrence of every known token in the
// template with its resolved value. Token keys are escaped with
// regexp.QuoteMeta before the match pattern is built, so brace characters
// and any other metacharacters in a key are matched literally. All keys are
// combined into one alternation and replaced in a single left-to-right scan;
// inserted values are never re-scanned, so a value containing a token-shaped
// substring stays verbatim and substitution cannot chain. Unknown tokens are
// left untouched, keeping partially filled templates inspectable.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	// Longer keys first, so a key that is a prefix of another cannot shadow it
	// in the alternation.
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for i, key := range keys {
		keys[i] = regexp.QuoteMeta(key)
	}

	pattern := regexp.MustCompile(strings.Join(keys, "|"))
	return pattern.ReplaceAllStringFunc(template, func(match string) string {
		return vars[match]
	})
}

// WrapHTMLForPDF wraps substituted content with legal document styles for
// the browser PDF engine.
func WrapHTMLForPDF(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 1in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
            text-align: justify;
        }
        h1 {
            font-size: 16pt;
            font-weight: bold;
            text-align: center;
            margin-bottom: 24pt;
        }
        h2 {
            font-size: 14pt;
            font-weight: bold;
            margin-top: 18pt;
            margin-bottom: 12pt;
        }
        h3 {
            font-size: 12pt;
            font-weight: bold;
            margin-top: 12pt;
            margin-bottom: 6pt;
        }
        p {
            margin-bottom: 12pt;
        }
        ul, ol {
            margin-left: 0.5in;
            margin-bottom: 12pt;
        }
        li {
            margin-bottom: 6pt;
        }
        .signature-block {
            margin-top: 48pt;
        }
        .signature-line {
            border-top: 1px solid #000;
            width: 3in;
            margin-top: 36pt;
            padding-top: 6pt;
        }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}
