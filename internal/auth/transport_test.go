package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/config"
)

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi", wantOK: true},
		{name: "missing header", header: "", wantOK: false},
		{name: "wrong scheme", header: "Basic abc", wantOK: false},
		{name: "no token", header: "Bearer ", wantOK: false},
		{name: "bare token", header: "abc.def.ghi", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if tt.wantOK && err != nil {
				t.Fatalf("TokenFromHeader(%q) error: %v", tt.header, err)
			}
			if !tt.wantOK && err == nil {
				t.Fatalf("TokenFromHeader(%q) = %q, want error", tt.header, got)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("TokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRedirectURL(t *testing.T) {
	got := RedirectURL("http://localhost:3000/auth", "tok123", time.Hour)
	want := "http://localhost:3000/auth/oauth-response/tok123/3600"
	if got != want {
		t.Errorf("RedirectURL() = %q, want %q", got, want)
	}

	// Trailing slash on the base must not produce a double slash.
	got = RedirectURL("http://localhost:3000/auth/", "tok123", time.Hour)
	if got != want {
		t.Errorf("RedirectURL() with trailing slash = %q, want %q", got, want)
	}
}

func TestTransportCookieRoundTrip(t *testing.T) {
	transport := NewTransport(config.CarrierCookie, time.Hour)
	app := fiber.New()

	app.Get("/set", func(c *fiber.Ctx) error {
		transport.Attach(c, "tok123")
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		token, err := transport.Extract(c)
		if err != nil {
			return err
		}
		return c.SendString(token)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	cookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(cookie, CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want %s cookie", cookie, CookieName)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("cookie not HttpOnly: %q", cookie)
	}
	if !strings.Contains(cookie, "max-age=3600") && !strings.Contains(cookie, "Max-Age=3600") {
		t.Errorf("cookie missing Max-Age=3600: %q", cookie)
	}

	// The cookie value is base64("Bearer <token>").
	value := cookie[strings.Index(cookie, "=")+1:]
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = value[:idx]
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		t.Fatalf("cookie value not base64: %v", err)
	}
	if string(decoded) != "Bearer tok123" {
		t.Fatalf("cookie decodes to %q, want %q", decoded, "Bearer tok123")
	}

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "tok123" {
		t.Errorf("Extract() round-trip = %q, want %q", got, "tok123")
	}
}

func TestTransportHeaderCarrier(t *testing.T) {
	transport := NewTransport(config.CarrierHeader, time.Hour)
	app := fiber.New()

	app.Get("/get", func(c *fiber.Ctx) error {
		token, err := transport.Extract(c)
		if err != nil {
			return c.SendStatus(http.StatusBadRequest)
		}
		return c.SendString(token)
	})

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer tok123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Header carrier never sets cookies on responses.
	setApp := fiber.New()
	setApp.Get("/set", func(c *fiber.Ctx) error {
		transport.Attach(c, "tok123")
		return c.SendStatus(http.StatusOK)
	})
	resp, err = setApp.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if cookie := resp.Header.Get("Set-Cookie"); cookie != "" {
		t.Errorf("header carrier set a cookie: %q", cookie)
	}
}
