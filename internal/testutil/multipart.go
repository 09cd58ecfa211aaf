package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"testing"
)

// FilePart is one file in a multipart body
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody encodes fields and files as multipart/form-data and returns the body and content type
func MultipartBody(t testing.TB, fields map[string]string, files ...FilePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("Failed to create file part %s: %v", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("Failed to write file part %s: %v", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// MultipartForm encodes and parses a multipart body, as a server would
func MultipartForm(t testing.TB, fields map[string]string, files ...FilePart) *multipart.Form {
	t.Helper()

	body, contentType := MultipartBody(t, fields, files...)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("Failed to parse content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("Failed to parse multipart body: %v", err)
	}
	t.Cleanup(func() {
		_ = form.RemoveAll()
	})
	return form
}
