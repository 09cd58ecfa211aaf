package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formData(t *testing.T, raw string) FormData {
	t.Helper()
	var d FormData
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func TestNormalizeContact(t *testing.T) {
	d := formData(t, `{"firstName":"Jane","lastName":"Doe","mobile":9876543210,"requirement":"need castings","company":"Acme"}`)
	s := Normalize("", d, "jane@example.com")

	assert.Equal(t, "contact", s.FormType)
	assert.Equal(t, "Jane Doe", s.Name)
	assert.Equal(t, "jane@example.com", s.Email)
	assert.False(t, s.EmailMissing)
	assert.Equal(t, "9876543210", s.Phone)
	assert.Equal(t, "need castings", s.Message)
	assert.Equal(t, "Acme", s.Organisation)
	assert.Nil(t, s.CADFilePath)
	assert.Nil(t, s.RFQFilePath)
}

func TestNormalizeQuote(t *testing.T) {
	d := formData(t, `{"name":"Jane Doe","email":"jane@x.com","phone":"1234567","message":"need parts",
		"address":"1 Foundry Rd","city":"Pune","state":"MH","estimatedVolume":5000,"releaseDate":"2026-12"}`)
	s := Normalize("Quote", d, "other@x.com")

	assert.Equal(t, "quote", s.FormType)
	assert.Equal(t, "jane@x.com", s.Email, "form email wins over the notification target")
	assert.Equal(t, "1 Foundry Rd", s.Address)
	assert.Equal(t, "Pune", s.City)
	assert.Equal(t, "MH", s.State)
	assert.Equal(t, "5000", s.EstimatedVolume)
	assert.Equal(t, "2026-12", s.ReleaseDate)
}

func TestNormalizeCertificationAndUnknown(t *testing.T) {
	s := Normalize("certification", formData(t, `{"name":"Raj","certificationType":"ISO 9001"}`), "")
	assert.Equal(t, "ISO 9001", s.CertificationType)
	assert.Equal(t, PlaceholderEmail, s.Email)
	assert.True(t, s.EmailMissing)

	s = Normalize("newsletter", formData(t, `{"name":"Raj","city":"Delhi","certification":"AS9100"}`), "raj@x.com")
	assert.Equal(t, "newsletter", s.FormType)
	assert.Equal(t, "Delhi", s.City)
	assert.Equal(t, "AS9100", s.CertificationType)
}

func TestFieldsAndRender(t *testing.T) {
	s := Normalize("quote", formData(t, `{"name":"<b>Jane</b>","email":"jane@x.com"}`), "")
	fields := Fields(s)

	assert.Equal(t, "New quote from <b>Jane</b>", Render("New {{form_type}} from {{name}}", fields, false))
	assert.Equal(t, "<p>&lt;b&gt;Jane&lt;/b&gt; jane@x.com {{unknown}}</p>",
		Render("<p>{{name}} {{email}} {{unknown}}</p>", fields, true))
	assert.Equal(t, "Quote Request", KindLabel("quote"))
	assert.Equal(t, "Newsletter", KindLabel("newsletter"))
}
