package middleware

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v3"

	"mentor-match/internal/pkg/response"
)

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app error", NewAppError(fiber.StatusBadRequest, "All fields are required", nil), fiber.StatusBadRequest, "All fields are required"},
		{"app error with cause", NewAppError(fiber.StatusNotFound, "Match request not found", errors.New("no rows")), fiber.StatusNotFound, "Match request not found"},
		{"app error empty message", NewAppError(fiber.StatusForbidden, "", nil), fiber.StatusForbidden, response.DefaultMessageForStatus(fiber.StatusForbidden)},
		{"app error 5xx collapsed", NewAppError(fiber.StatusBadGateway, "upstream detail", nil), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"app error zero status", NewAppError(0, "detail", nil), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), fiber.StatusMethodNotAllowed, "Method Not Allowed"},
		{"fiber 5xx collapsed", fiber.NewError(fiber.StatusServiceUnavailable, "db down"), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"nil", nil, fiber.StatusInternalServerError, response.MessageInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := normalizeError(tc.err)
			if status != tc.wantStatus || msg != tc.wantMsg {
				t.Fatalf("got (%d, %q), want (%d, %q)", status, msg, tc.wantStatus, tc.wantMsg)
			}
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := NewAppError(fiber.StatusNotFound, "Match request not found", cause)

	if err.Error() != "Match request not found: no rows" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach the cause")
	}

	bare := NewAppError(fiber.StatusBadRequest, "Invalid request ID", nil)
	if bare.Error() != "Invalid request ID" {
		t.Fatalf("unexpected message %q", bare.Error())
	}
}
