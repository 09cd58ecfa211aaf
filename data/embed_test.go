package data

import (
	"testing"

	"github.com/forgeline/leaddesk/internal/models"
)

func TestDefaultTemplates(t *testing.T) {
	templates, err := DefaultTemplates()
	if err != nil {
		t.Fatalf("DefaultTemplates failed: %v", err)
	}

	seen := map[string]bool{}
	for _, tpl := range templates {
		if tpl.Subject == "" || tpl.Body == "" {
			t.Errorf("Template %s/%s has empty content", tpl.FormType, tpl.TemplateType)
		}
		if tpl.TemplateType != models.TemplateAdmin && tpl.TemplateType != models.TemplateCustomer {
			t.Errorf("Unexpected template type %q", tpl.TemplateType)
		}
		key := tpl.FormType + "/" + tpl.TemplateType
		if seen[key] {
			t.Errorf("Duplicate template %s", key)
		}
		seen[key] = true
	}

	for _, kind := range []string{models.FormTypeContact, models.FormTypeQuote, models.FormTypeCertification} {
		for _, role := range []string{models.TemplateAdmin, models.TemplateCustomer} {
			if !seen[kind+"/"+role] {
				t.Errorf("Missing template %s/%s", kind, role)
			}
		}
	}
}
