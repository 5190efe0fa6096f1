package partials

import (
	"context"
	"fmt"
	"html"
	"io"

	"foreclosure_flow_go/models"

	"github.com/a-h/templ"
)

// TemplatePreview renders substituted document HTML for the preview tab.
// Content is sanitized before it reaches this component.
func TemplatePreview(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="document-preview">`); err != nil {
			return err
		}
		if err := templ.Raw(content).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// DocumentsTable renders the generated-documents list for a case
func DocumentsTable(docs []models.Document, caseID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table class="documents-table"><thead><tr><th>Title</th><th>Type</th><th>Status</th><th>Created</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, doc := range docs {
			row := fmt.Sprintf(
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><a href="/api/cases/%s/documents/%s/download">Download</a></td></tr>`,
				html.EscapeString(doc.Title),
				html.EscapeString(doc.Type),
				html.EscapeString(doc.Status),
				doc.CreatedAt.Format("2006-01-02 15:04"),
				html.EscapeString(caseID),
				html.EscapeString(doc.ID),
			)
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// DeadlinesList renders the deadlines tab for a case
func DeadlinesList(deadlines []models.Deadline) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="deadlines-list">`); err != nil {
			return err
		}
		for _, d := range deadlines {
			state := ""
			if d.Completed {
				state = ` class="completed"`
			}
			item := fmt.Sprintf(`<li%s>%s - %s (%s)</li>`,
				state,
				d.Date.Format("2006-01-02"),
				html.EscapeString(d.Title),
				html.EscapeString(d.Type),
			)
			if _, err := io.WriteString(w, item); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}
