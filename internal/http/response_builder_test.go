package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().BodyString("ok").Write(rr)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("body = %q", rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Error("no triggers were set, header should be absent")
	}
}

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerPaymentRecorded(1, 2026).
		TriggerSuccessNotification("готово").
		BodyHTML("<div>ok</div>").
		Write(rr)

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := triggers["payment:recorded"]; !ok {
		t.Error("missing payment:recorded trigger")
	}
	if _, ok := triggers["show-notification"]; !ok {
		t.Error("missing show-notification trigger")
	}

	var period map[string]int
	if err := json.Unmarshal(triggers["payment:recorded"], &period); err != nil {
		t.Fatalf("trigger payload: %v", err)
	}
	if period["quarter"] != 1 || period["year"] != 2026 {
		t.Errorf("period payload = %v", period)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestHTMXResponseBuilderCustomHeaderAndStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		Status(http.StatusCreated).
		Header("HX-Redirect", "/").
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("HX-Redirect") != "/" {
		t.Error("custom header not written")
	}
}

func TestErrorResponseEscapesHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorResponse(http.StatusUnprocessableEntity, `<script>alert("x")</script>`).Write(rr)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "<script>") {
		t.Errorf("message not escaped: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `class="error"`) {
		t.Errorf("error wrapper missing: %s", rr.Body.String())
	}
}

func TestErrorResponseHelpers(t *testing.T) {
	tests := []struct {
		name    string
		builder *HTMXResponseBuilder
		want    int
	}{
		{"bad request", BadRequestError("x"), http.StatusBadRequest},
		{"unauthorized", UnauthorizedError("x"), http.StatusUnauthorized},
		{"unprocessable", UnprocessableEntityError("x"), http.StatusUnprocessableEntity},
		{"internal", InternalServerError("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.builder.Write(rr)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
