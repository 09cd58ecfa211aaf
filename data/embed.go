package data

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/forgeline/leaddesk/internal/models"
)

//go:embed email_templates.toml
var EmailTemplatesTOML string

type templateFile struct {
	Template []struct {
		FormType     string `toml:"form_type"`
		TemplateType string `toml:"template_type"`
		Subject      string `toml:"subject"`
		Body         string `toml:"body"`
	} `toml:"template"`
}

// DefaultTemplates decodes the embedded default email templates
func DefaultTemplates() ([]models.EmailTemplate, error) {
	var file templateFile
	if _, err := toml.Decode(EmailTemplatesTOML, &file); err != nil {
		return nil, fmt.Errorf("failed to decode default email templates: %w", err)
	}

	out := make([]models.EmailTemplate, 0, len(file.Template))
	for _, t := range file.Template {
		out = append(out, models.EmailTemplate{
			FormType:     t.FormType,
			TemplateType: t.TemplateType,
			Subject:      t.Subject,
			Body:         strings.TrimSpace(t.Body),
		})
	}
	return out, nil
}
