package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/forgeline/leaddesk/internal/types"
)

// EmailPayload is the client supplied content of one notification
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Request is a decoded ingestion request, independent of its wire encoding
type Request struct {
	FormType       string
	FormData       FormData
	RawFormData    json.RawMessage
	CustomerEmail  *EmailPayload
	AdminEmail     *EmailPayload
	RecaptchaToken string
	Files          map[string]*multipart.FileHeader
	ClientIP       string
	UserAgent      string
}

type jsonBody struct {
	FormType       string          `json:"formType"`
	FormData       json.RawMessage `json:"formData"`
	CustomerEmail  *EmailPayload   `json:"customerEmail"`
	AdminEmail     *EmailPayload   `json:"adminEmail"`
	RecaptchaToken string          `json:"recaptchaToken"`
}

// DecodeJSON decodes an application/json request body
func DecodeJSON(body []byte) (*Request, error) {
	var in jsonBody
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, badRequest("Invalid JSON body")
	}

	req := &Request{
		FormType:       in.FormType,
		CustomerEmail:  in.CustomerEmail,
		AdminEmail:     in.AdminEmail,
		RecaptchaToken: in.RecaptchaToken,
	}

	if err := req.setFormData(in.FormData, "formData"); err != nil {
		return nil, err
	}

	// the token is also accepted inside the form itself
	if req.RecaptchaToken == "" {
		req.RecaptchaToken = req.FormData.First("recaptchaToken", "g-recaptcha-response")
	}

	return req, nil
}

// DecodeMultipart decodes a multipart/form-data request. JSON sub-fields that fail
// to parse reject the request instead of being dropped.
func DecodeMultipart(form *multipart.Form) (*Request, error) {
	value := func(key string) string {
		if vals := form.Value[key]; len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
		return ""
	}

	req := &Request{
		FormType:       value("formType"),
		RecaptchaToken: value("recaptchaToken"),
		Files:          make(map[string]*multipart.FileHeader),
	}

	if raw := value("formData"); raw != "" {
		if err := req.setFormData(json.RawMessage(raw), "formData"); err != nil {
			return nil, err
		}
	} else {
		// flat multipart forms send every field as its own part
		req.FormData = FormData{}
		for key, vals := range form.Value {
			if len(vals) > 0 && !isEnvelopeField(key) {
				req.FormData[key] = types.FlexString(vals[0])
			}
		}
		raw, _ := json.Marshal(req.FormData)
		req.RawFormData = raw
	}

	var err error
	if req.CustomerEmail, err = decodeEmailField(value("customerEmail"), "customerEmail"); err != nil {
		return nil, err
	}
	if req.AdminEmail, err = decodeEmailField(value("adminEmail"), "adminEmail"); err != nil {
		return nil, err
	}

	for _, field := range Slots {
		if files := form.File[field]; len(files) > 0 {
			req.Files[field] = files[0]
		}
	}

	if req.RecaptchaToken == "" {
		req.RecaptchaToken = req.FormData.First("recaptchaToken", "g-recaptcha-response")
	}

	return req, nil
}

func (r *Request) setFormData(raw json.RawMessage, field string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		r.FormData = FormData{}
		return nil
	}
	var data FormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return badRequest(fmt.Sprintf("Invalid JSON in field %s", field))
	}
	r.FormData = data
	r.RawFormData = raw
	return nil
}

func decodeEmailField(raw, field string) (*EmailPayload, error) {
	if raw == "" {
		return nil, nil
	}
	var p EmailPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, badRequest(fmt.Sprintf("Invalid JSON in field %s", field))
	}
	return &p, nil
}

func isEnvelopeField(key string) bool {
	switch key {
	case "formType", "formData", "customerEmail", "adminEmail", "recaptchaToken":
		return true
	}
	return false
}
