package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	recorder := httptest.NewRecorder()
	SetFlash(recorder, "Bought 10 shares of NFLX")

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(cookies[0])

	popRecorder := httptest.NewRecorder()
	got := PopFlash(popRecorder, request)
	if got != "Bought 10 shares of NFLX" {
		t.Errorf("PopFlash() = %q, want the stored message", got)
	}

	// Pop must clear the cookie.
	var cleared bool
	for _, cookie := range popRecorder.Result().Cookies() {
		if cookie.Name == flashCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not cleared after pop")
	}
}

func TestPopFlash_NoCookie(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PopFlash(httptest.NewRecorder(), request); got != "" {
		t.Errorf("PopFlash() = %q, want empty", got)
	}
}
