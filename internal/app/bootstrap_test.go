package app

import (
	"bytes"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"mentor-match/internal/delivery/http/middleware"
)

func TestGlobalMiddleware_LogsRenderedStatus(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	f := fiber.New()
	registerGlobalMiddleware(f)
	f.Get("/requests/none", func(c fiber.Ctx) error {
		return middleware.NewAppError(fiber.StatusNotFound, "Match request not found", nil)
	})

	res, err := f.Test(httptest.NewRequest("GET", "/requests/none", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}

	line := buf.String()
	if !strings.Contains(line, "status=404") {
		t.Fatalf("access log must carry the rendered status, got %q", line)
	}
	if !strings.Contains(line, "path=/requests/none") {
		t.Fatalf("access log missing path, got %q", line)
	}
}

func TestListenAddr(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{":8080", ":8080", false},
		{" 9090 ", ":9090", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tc := range cases {
		got, err := ListenAddr(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("port %q: expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("port %q: got (%q, %v), want %q", tc.in, got, err, tc.want)
		}
	}
}
