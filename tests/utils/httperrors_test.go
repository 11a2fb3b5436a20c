package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetwatch/src/utils"
)

func TestWriteError(t *testing.T) {
	t.Run("should write the HTTPError code and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		utils.WriteError(rec, utils.NotFound("job not found"))

		if rec.Code != http.StatusNotFound {
			t.Error("expected 404, got", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal("body is not valid JSON:", err)
		}
		if body["error"] != "job not found" {
			t.Error("unexpected message:", body["error"])
		}
	})

	t.Run("should default plain errors to 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		utils.WriteError(rec, errors.New("boom"))

		if rec.Code != http.StatusInternalServerError {
			t.Error("expected 500, got", rec.Code)
		}
	})

	t.Run("should keep messages with quotes valid JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		utils.WriteError(rec, utils.BadRequest(`field "name" is required`))

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal("body is not valid JSON:", err)
		}
		if body["error"] != `field "name" is required` {
			t.Error("unexpected message:", body["error"])
		}
	})
}
