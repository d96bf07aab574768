package labelerconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Ozone/internal/atproto/identity"
)

func TestParseMeta(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want *OzoneMeta
	}{
		{
			name: "complete",
			raw:  map[string]any{"did": "did:plc:abc", "url": "https://mod.example.com", "publicKey": "did:key:z1"},
			want: &OzoneMeta{DID: "did:plc:abc", URL: "https://mod.example.com", PublicKey: "did:key:z1"},
		},
		{
			name: "only did",
			raw:  map[string]any{"did": "did:plc:abc", "url": 5},
			want: &OzoneMeta{DID: "did:plc:abc"},
		},
		{
			name: "did not a string",
			raw:  map[string]any{"did": []any{"did:plc:abc"}},
			want: nil,
		},
		{
			name: "empty",
			raw:  map[string]any{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMeta(tt.raw)
			if tt.want == nil {
				if got != nil {
					t.Errorf("Expected nil meta, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFetchMeta_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("hello"))
			},
		},
		{
			name: "json array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"did":"did:plc:abc"}]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if meta := fetchMeta(context.Background(), identity.NewSSRFSafeHTTPClient(true), server.URL); meta != nil {
				t.Errorf("Expected nil meta, got %+v", meta)
			}
		})
	}
}

func TestFetchMeta_IgnoresBasePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"did":"did:plc:abc"}`))
	}))
	defer server.Close()

	meta := fetchMeta(context.Background(), identity.NewSSRFSafeHTTPClient(true), server.URL+"/some/base/path")

	if meta == nil || meta.DID != "did:plc:abc" {
		t.Fatalf("Expected meta for did:plc:abc, got %+v", meta)
	}
	if gotPath != WellKnownPath {
		t.Errorf("Expected path %q, got %q", WellKnownPath, gotPath)
	}
}

func TestFetchMeta_InvalidBaseURL(t *testing.T) {
	client := identity.NewSSRFSafeHTTPClient(true)

	for _, base := range []string{"", "not a url", "/relative/only"} {
		if meta := fetchMeta(context.Background(), client, base); meta != nil {
			t.Errorf("fetchMeta(%q) = %+v, want nil", base, meta)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "https://mod.example.com", want: "https://mod.example.com/", wantOK: true},
		{in: "https://mod.example.com/", want: "https://mod.example.com/", wantOK: true},
		{in: "HTTPS://Mod.Example.COM", want: "https://mod.example.com/", wantOK: true},
		{in: "https://mod.example.com:443/", want: "https://mod.example.com/", wantOK: true},
		{in: "http://mod.example.com:80", want: "http://mod.example.com/", wantOK: true},
		{in: "http://mod.example.com:8080/x", want: "http://mod.example.com:8080/x", wantOK: true},
		{in: "http://[::1]:8080", want: "http://[::1]:8080/", wantOK: true},
		{in: "", wantOK: false},
		{in: "mod.example.com", wantOK: false},
		{in: "://bad", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeURL(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeURL(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSameURL(t *testing.T) {
	if !sameURL("https://mod.example.com", "https://MOD.example.com/") {
		t.Error("Expected trailing slash and host case to be ignored")
	}
	if sameURL("https://mod.example.com/a", "https://mod.example.com/b") {
		t.Error("Expected different paths not to match")
	}
	if sameURL("", "") {
		t.Error("Expected empty URLs not to match")
	}
}
