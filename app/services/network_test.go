package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCallerIP(t *testing.T) {
	tests := []struct {
		name         string
		override     string
		forwardedFor string
		remoteAddr   string
		want         string
	}{
		{"override wins", "203.0.113.200", "198.51.100.7", "10.0.0.1", "203.0.113.200"},
		{"first forwarded hop", "", "203.0.113.5, 10.0.0.1", "10.0.0.1", "203.0.113.5"},
		{"single forwarded hop with spaces", "", "  203.0.113.5  ", "10.0.0.1", "203.0.113.5"},
		{"remote address fallback", "", "", "203.0.113.5", "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewIPResolver(tt.override, "")
			if got := r.CallerIP(tt.forwardedFor, tt.remoteAddr); got != tt.want {
				t.Errorf("CallerIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicIP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ip":"198.51.100.42"}`)
	}))
	defer server.Close()

	r := NewIPResolver("", server.URL)
	ip, err := r.PublicIP()
	if err != nil {
		t.Fatalf("PublicIP() error = %v", err)
	}
	if ip != "198.51.100.42" {
		t.Errorf("PublicIP() = %q", ip)
	}
}

func TestPublicIPOverride(t *testing.T) {
	r := NewIPResolver("203.0.113.200", "http://unreachable.invalid")
	ip, err := r.PublicIP()
	if err != nil {
		t.Fatalf("PublicIP() error = %v", err)
	}
	if ip != "203.0.113.200" {
		t.Errorf("PublicIP() = %q", ip)
	}
}

func TestPublicIPBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := NewIPResolver("", server.URL)
	if _, err := r.PublicIP(); err == nil {
		t.Error("expected an error for a non-200 lookup response")
	}
}
