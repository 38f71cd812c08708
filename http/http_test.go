package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "linear",
				StatusCode: 404,
				Message:    "Team not found",
				Endpoint:   "/graphql",
			},
			wantMsg:    "linear API error (404) at /graphql: Team not found",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "server error",
			err: &APIError{
				Service:    "linear",
				StatusCode: 502,
				Message:    "Bad gateway",
				Endpoint:   "/graphql",
			},
			wantMsg:    "linear API error (502) at /graphql: Bad gateway",
			wantUnwrap: ErrServerError,
		},
		{
			name: "unauthorized without message",
			err: &APIError{
				Service:    "linear",
				StatusCode: 401,
				Endpoint:   "/graphql",
			},
			wantMsg:    "linear API error (401) at /graphql",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name: "rate limited",
			err: &APIError{
				Service:    "linear",
				StatusCode: 429,
				Message:    "Slow down",
				Endpoint:   "/graphql",
			},
			wantMsg:    "linear API error (429) at /graphql: Slow down",
			wantUnwrap: ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantUnwrap) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.wantUnwrap)
			}
		})
	}
}

func TestClient_Post(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "linear",
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "lin_api_test")
		},
	})

	var result struct {
		Data struct {
			OK bool `json:"ok"`
		} `json:"data"`
	}
	if err := c.Post(context.Background(), "/graphql", map[string]string{"query": "{}"}, &result); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if !result.Data.OK {
		t.Error("response not decoded")
	}
	if gotAuth != "lin_api_test" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "lin_api_test")
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such resource"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "linear"})

	err := c.Get(context.Background(), "/missing", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "no such resource" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "no such resource")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false, want true")
	}
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	// Failures surface immediately; the client never retries.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "linear"})

	if err := c.Get(context.Background(), "/flaky", nil); err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}
