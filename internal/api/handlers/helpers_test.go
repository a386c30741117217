package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	t.Run("encodes and sets content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"hello": "world"}

		writeJSON(w, http.StatusOK, data)

		if w.Code != http.StatusOK {
			t.Errorf("got status %d, want %d", w.Code, http.StatusOK)
		}

		ct := w.Header().Get("Content-Type")
		if ct != "application/json" {
			t.Errorf("got Content-Type %q, want %q", ct, "application/json")
		}

		var got map[string]string
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response body: %v", err)
		}
		if got["hello"] != "world" {
			t.Errorf("got %q, want %q", got["hello"], "world")
		}
	})

	t.Run("sets custom status code", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"code": "API_KEY_ERROR"})

		if w.Code != http.StatusPaymentRequired {
			t.Errorf("got status %d, want %d", w.Code, http.StatusPaymentRequired)
		}
	})

	t.Run("encode failure leaves committed response alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeJSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("got status %d, want %d", w.Code, http.StatusOK)
		}
		if body := w.Body.String(); body != "" {
			t.Errorf("body = %q, want nothing appended after headers", body)
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}

	ct := w.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("got Content-Type %q, want %q", ct, "application/json")
	}

	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if got["error"] != "something went wrong" {
		t.Errorf("got error %q, want %q", got["error"], "something went wrong")
	}
}

func TestDecodeBody_TooLarge(t *testing.T) {
	body := `{"articleText":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()

	var v map[string]any
	if err := decodeBody(w, r, &v); err == nil {
		t.Fatal("expected error for oversized body, got nil")
	}
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
}
