package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"revoice/internal/services"
)

func TestTranslateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Hello" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("langpair"); got != "en|es" {
			t.Errorf("langpair = %q", got)
		}
		w.Write([]byte(`{"responseData":{"translatedText":"Hola"},"responseStatus":200}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	got, err := c.Translate(context.Background(), "Hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Hola" {
		t.Fatalf("Translate = %q", got)
	}
}

func TestTranslateSendsEmail(t *testing.T) {
	var gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = r.URL.Query().Get("de")
		w.Write([]byte(`{"responseData":{"translatedText":"Hola"},"responseStatus":200}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Email: "ops@example.com"})
	if _, err := c.Translate(context.Background(), "Hello", "en", "es"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if gotEmail != "ops@example.com" {
		t.Fatalf("de = %q", gotEmail)
	}
}

func TestTranslateBlankTextSkipsRequest(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	got, err := c.Translate(context.Background(), "   ", "en", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "   " {
		t.Fatalf("Translate = %q", got)
	}
}

func TestTranslateAPIErrorIsSegmentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseData":{"translatedText":""},"responseStatus":"403","responseDetails":"INVALID LANGUAGE PAIR"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Translate(context.Background(), "Hello", "en", "xx")
	if !errors.Is(err, services.ErrSegment) {
		t.Fatalf("expected segment error, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatal("translation failures must stay non-fatal")
	}
}

func TestTranslateHTTPErrorIsSegmentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Translate(context.Background(), "Hello", "en", "es")
	if !errors.Is(err, services.ErrSegment) {
		t.Fatalf("expected segment error, got %v", err)
	}
}

func TestTranslateUnreachableHostIsSegmentError(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Translate(context.Background(), "Hello", "en", "es")
	if !errors.Is(err, services.ErrSegment) {
		t.Fatalf("expected segment error, got %v", err)
	}
}
