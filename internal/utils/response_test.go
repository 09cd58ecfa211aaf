package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/data", func(c *fiber.Ctx) error { return DataResponse(c, []int{1, 2}) })
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFoundResponse(c, "Submission not found") })

	resp, err := app.Test(httptest.NewRequest("GET", "/data", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var ok struct {
		Success bool  `json:"success"`
		Data    []int `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.StatusCode != 200 || !ok.Success || len(ok.Data) != 2 {
		t.Errorf("Unexpected data response %d %+v", resp.StatusCode, ok)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var body ErrorResponseStruct
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.StatusCode != 404 || body.Success || body.Message != "Submission not found" {
		t.Errorf("Unexpected error response %d %+v", resp.StatusCode, body)
	}
}
