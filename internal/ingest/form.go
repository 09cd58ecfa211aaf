package ingest

import (
	"strings"

	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/types"
)

// PlaceholderEmail is stored when no contact address can be resolved
const PlaceholderEmail = "no-email@placeholder.local"

// FormData is the client supplied field map for one form
type FormData map[string]types.FlexString

// First returns the first non-empty value among the given keys
func (d FormData) First(keys ...string) string {
	for _, k := range keys {
		if v := d[k].String(); v != "" {
			return v
		}
	}
	return ""
}

// form maps one kind's field set onto the canonical submission
type form interface {
	normalize(d FormData, s *models.Submission)
}

type contactForm struct{}

type quoteForm struct{}

type certificationForm struct{}

// genericForm handles kinds the site does not know about by applying every mapping
type genericForm struct{}

var forms = map[string]form{
	models.FormTypeContact:       contactForm{},
	models.FormTypeQuote:         quoteForm{},
	models.FormTypeCertification: certificationForm{},
}

func (contactForm) normalize(d FormData, s *models.Submission) {
	s.Organisation = d.First("organisation", "organization", "company")
}

func (quoteForm) normalize(d FormData, s *models.Submission) {
	s.Organisation = d.First("organisation", "organization", "company")
	s.Address = d.First("address")
	s.City = d.First("city")
	s.State = d.First("state")
	s.EstimatedVolume = d.First("estimatedVolume", "volume", "quantity")
	s.ReleaseDate = d.First("releaseDate", "expectedReleaseDate")
}

func (certificationForm) normalize(d FormData, s *models.Submission) {
	s.Organisation = d.First("organisation", "organization", "company")
	s.CertificationType = d.First("certificationType", "certification")
}

func (genericForm) normalize(d FormData, s *models.Submission) {
	quoteForm{}.normalize(d, s)
	s.CertificationType = d.First("certificationType", "certification")
}

// Normalize maps a raw form onto a canonical submission. customerTo is the
// customer notification address, used when the form itself carries no email.
func Normalize(kind string, d FormData, customerTo string) *models.Submission {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = models.FormTypeContact
	}

	s := &models.Submission{FormType: kind}

	s.Name = d.First("name", "fullName")
	if s.Name == "" {
		s.Name = strings.TrimSpace(d.First("firstName") + " " + d.First("lastName"))
	}

	s.Email = d.First("email")
	if s.Email == "" {
		s.Email = strings.TrimSpace(customerTo)
	}
	if s.Email == "" {
		s.Email = PlaceholderEmail
		s.EmailMissing = true
	}

	s.Phone = d.First("phone", "mobile", "phoneNumber")
	s.Message = d.First("message", "requirement", "requirements")

	f, ok := forms[kind]
	if !ok {
		f = genericForm{}
	}
	f.normalize(d, s)

	return s
}

// Fields returns the placeholder values used when rendering email templates
func Fields(s *models.Submission) map[string]string {
	fields := map[string]string{
		"formType":          s.FormType,
		"name":              s.Name,
		"email":             s.Email,
		"phone":             s.Phone,
		"message":           s.Message,
		"organisation":      s.Organisation,
		"address":           s.Address,
		"city":              s.City,
		"state":             s.State,
		"estimatedVolume":   s.EstimatedVolume,
		"releaseDate":       s.ReleaseDate,
		"certificationType": s.CertificationType,
	}
	// snake_case aliases for templates written against the table columns
	fields["form_type"] = s.FormType
	fields["estimated_volume"] = s.EstimatedVolume
	fields["release_date"] = s.ReleaseDate
	fields["certification_type"] = s.CertificationType
	return fields
}
