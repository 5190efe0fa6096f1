package services

import (
	"fmt"
	"log"

	"foreclosure_flow_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []*resend.Attachment
}

// SendEmail sends an email using the Resend API. In test mode the email is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:        fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:          email.To,
		Subject:     email.Subject,
		Html:        email.HTMLBody,
		Text:        email.TextBody,
		Attachments: email.Attachments,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// ServeDocumentByEmail emails a finalized document's PDF to a recipient.
// The caller records service separately via MarkServed.
func ServeDocumentByEmail(cfg *config.Config, to, documentTitle, caseFileNumber string, pdfBytes []byte) error {
	email := &Email{
		To:      []string{to},
		Subject: fmt.Sprintf("%s - file %s", documentTitle, caseFileNumber),
		TextBody: fmt.Sprintf(
			"Please find attached the document %q regarding file %s.\n\nThis message was sent by the firm's case management system.",
			documentTitle, caseFileNumber),
		Attachments: []*resend.Attachment{
			{
				Filename:    documentTitle + ".pdf",
				Content:     pdfBytes,
				ContentType: "application/pdf",
			},
		},
	}
	return SendEmail(cfg, email)
}

// logEmailToConsole logs email details in test mode
func logEmailToConsole(email *Email) {
	log.Printf("EMAIL (test mode - not sent) To: %v Subject: %s", email.To, email.Subject)
	if email.TextBody != "" {
		log.Printf("--- TEXT BODY ---\n%s", email.TextBody)
	}
	for _, a := range email.Attachments {
		log.Printf("Attachment: %s (%d bytes)", a.Filename, len(a.Content))
	}
}
