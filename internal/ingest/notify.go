package ingest

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/models"
)

var kindLabels = map[string]string{
	models.FormTypeContact:       "Contact",
	models.FormTypeQuote:         "Quote Request",
	models.FormTypeCertification: "Certification Download",
}

// KindLabel returns a human readable name for a form kind
func KindLabel(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	if kind == "" {
		return "Form"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

// Render replaces {{key}} placeholders. When escape is set values are HTML escaped.
func Render(text string, fields map[string]string, escape bool) string {
	pairs := make([]string, 0, len(fields)*2)
	for k, v := range fields {
		if escape {
			v = html.EscapeString(v)
		}
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// adminMessage builds the operator notification. The destination is always the
// configured operator address; missing content comes from the stored template,
// then from the built-in layout.
func (in *Ingestor) adminMessage(ctx context.Context, sub *models.Submission, client *EmailPayload, attachments []mailer.Attachment) mailer.Message {
	var subject, body string
	if client != nil {
		subject = strings.TrimSpace(client.Subject)
		body = strings.TrimSpace(client.HTML)
		if to := strings.TrimSpace(client.To); to != "" && !strings.EqualFold(to, in.opts.AdminEmail) {
			log.Info("ignoring client supplied admin address", "to", to)
		}
	}

	if (subject == "" || body == "") && in.templates != nil {
		tpl, err := in.templates.Find(ctx, sub.FormType, models.TemplateAdmin)
		if err != nil {
			log.Debug("no stored admin template, using defaults", "formType", sub.FormType, "err", err)
		} else if tpl != nil {
			fields := Fields(sub)
			if subject == "" {
				subject = Render(tpl.Subject, fields, false)
			}
			if body == "" {
				body = Render(tpl.Body, fields, true)
			}
		}
	}

	if subject == "" {
		subject = fmt.Sprintf("New %s Submission from %s", KindLabel(sub.FormType), displayName(sub))
	}
	if body == "" {
		body = defaultAdminHTML(sub, in.opts.SiteName)
	}

	return mailer.Message{
		To:          in.opts.AdminEmail,
		Subject:     subject,
		HTML:        body,
		BCC:         in.opts.AdminBCC,
		Attachments: attachments,
	}
}

func displayName(sub *models.Submission) string {
	if sub.Name != "" {
		return sub.Name
	}
	return sub.Email
}

type row struct {
	label, value string
}

func submissionRows(sub *models.Submission) []row {
	rows := []row{
		{"Form", KindLabel(sub.FormType)},
		{"Name", sub.Name},
		{"Email", sub.Email},
		{"Phone", sub.Phone},
		{"Organisation", sub.Organisation},
		{"Address", sub.Address},
		{"City", sub.City},
		{"State", sub.State},
		{"Estimated Volume", sub.EstimatedVolume},
		{"Release Date", sub.ReleaseDate},
		{"Certification", sub.CertificationType},
		{"Message", sub.Message},
	}
	if sub.CADFilePath != nil {
		rows = append(rows, row{"CAD File", *sub.CADFilePath})
	}
	if sub.RFQFilePath != nil {
		rows = append(rows, row{"RFQ File", *sub.RFQFilePath})
	}

	out := rows[:0]
	for _, r := range rows {
		if r.value != "" {
			out = append(out, r)
		}
	}
	return out
}

func htmlTable(rows []row) string {
	var b strings.Builder
	b.WriteString(`<table cellpadding="6" style="border-collapse:collapse">`)
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr><td style="font-weight:bold;vertical-align:top">%s</td><td>%s</td></tr>`,
			html.EscapeString(r.label), strings.ReplaceAll(html.EscapeString(r.value), "\n", "<br>"))
	}
	b.WriteString(`</table>`)
	return b.String()
}

func defaultAdminHTML(sub *models.Submission, siteName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New %s Submission</h2>", html.EscapeString(KindLabel(sub.FormType)))
	if siteName != "" {
		fmt.Fprintf(&b, "<p>Received through the %s website.</p>", html.EscapeString(siteName))
	}
	b.WriteString(htmlTable(submissionRows(sub)))
	if sub.EmailMissing {
		b.WriteString("<p><strong>No contact email was supplied with this submission.</strong></p>")
	}
	return b.String()
}

// alertMessage summarizes a submission that could not be written to the database
func alertMessage(to string, sub *models.Submission, dbErr *database.Error, at time.Time) mailer.Message {
	var b strings.Builder
	b.WriteString("<h2>Form submission database failure</h2>")
	b.WriteString("<p>A submission could not be saved. Its details are below so the lead is not lost.</p>")
	b.WriteString(htmlTable([]row{
		{"Reason", string(dbErr.Reason)},
		{"What to check", dbErr.Hint()},
		{"Time", at.UTC().Format(time.RFC3339)},
	}))
	b.WriteString("<h3>Submission</h3>")
	b.WriteString(htmlTable(submissionRows(sub)))

	return mailer.Message{
		To:      to,
		Subject: "[ALERT] Form submission database failure",
		HTML:    b.String(),
	}
}
