package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
)

func TestAnthropicGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" || r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing auth headers")
		}

		var body anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Model != "claude-test" || body.MaxTokens != DefaultMaxTokens || body.System != "sys" {
			t.Errorf("unexpected request body: %+v", body)
		}
		if len(body.Messages) != 1 || body.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", body.Messages)
		}

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"# SEO Analysis"}]}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("key", server.URL, []string{"claude-test"}, time.Second)
	got, err := p.Generate(context.Background(), "claude-test", Prompt{System: "sys", User: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "# SEO Analysis" || got.Model != "claude-test" || got.Provider != "anthropic" {
		t.Errorf("unexpected completion: %+v", got)
	}
}

func TestGenerateErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantQuota bool
		wantHTTP  bool
		wantFmt   bool
	}{
		{name: "payment required", status: http.StatusPaymentRequired, body: `{}`, wantQuota: true},
		{name: "credit message", status: http.StatusBadRequest, body: `{"error":{"message":"Your credit balance is too low"}}`, wantQuota: true},
		{name: "quota message", status: http.StatusForbidden, body: `quota exceeded`, wantQuota: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"slow"}`, wantHTTP: true},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`, wantFmt: true},
		{name: "malformed", status: http.StatusOK, body: `{"choices":`, wantFmt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewTogetherProvider("key", server.URL, []string{"m"}, time.Second)
			_, err := p.Generate(context.Background(), "m", Prompt{User: "x"})
			if err == nil {
				t.Fatal("expected error")
			}

			if IsQuotaError(err) != tt.wantQuota {
				t.Errorf("IsQuotaError() = %v, want %v (%v)", IsQuotaError(err), tt.wantQuota, err)
			}

			var httpErr *httpclient.HTTPError
			if tt.wantHTTP && !errors.As(err, &httpErr) {
				t.Errorf("expected *HTTPError, got %T", err)
			}

			var formatErr *httpclient.FormatError
			if tt.wantFmt && !errors.As(err, &formatErr) {
				t.Errorf("expected *FormatError, got %T (%v)", err, err)
			}
		})
	}
}

func TestTogetherGenerateSendsSystemPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var body chatRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
			t.Errorf("expected system + user messages, got %+v", body.Messages)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	p := NewTogetherProvider("key", server.URL, nil, time.Second)
	got, err := p.Generate(context.Background(), "m", Prompt{System: "sys", User: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "ok" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestListModels(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{name: "plain array with ids", body: `[{"id":"a"},{"id":"b"}]`, expected: []string{"a", "b"}},
		{name: "array with names", body: `[{"name":"a"}]`, expected: []string{"a"}},
		{name: "data envelope", body: `{"data":[{"id":"c"}]}`, expected: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewTogetherProvider("key", server.URL, nil, time.Second)
			got, err := p.ListModels(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ListModels() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ListModels()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

type fakeLister struct {
	preferred []string
	available []string
	err       error
}

func (f *fakeLister) Name() string              { return "fake" }
func (f *fakeLister) PreferredModels() []string { return f.preferred }
func (f *fakeLister) Generate(ctx context.Context, model string, prompt Prompt) (Completion, error) {
	return Completion{}, nil
}
func (f *fakeLister) ListModels(ctx context.Context) ([]string, error) { return f.available, f.err }

func TestSelectModel(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeLister
		expected string
	}{
		{
			name:     "first preferred available",
			provider: &fakeLister{preferred: []string{"a", "b"}, available: []string{"b", "a"}},
			expected: "a",
		},
		{
			name:     "second preferred when first missing",
			provider: &fakeLister{preferred: []string{"a", "b"}, available: []string{"b", "z"}},
			expected: "b",
		},
		{
			name:     "none available falls back to first preferred",
			provider: &fakeLister{preferred: []string{"a", "b"}, available: []string{"z"}},
			expected: "a",
		},
		{
			name:     "listing error falls back to first preferred",
			provider: &fakeLister{preferred: []string{"a"}, err: errors.New("boom")},
			expected: "a",
		},
		{
			name:     "no preferences",
			provider: &fakeLister{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectModel(context.Background(), tt.provider); got != tt.expected {
				t.Errorf("SelectModel() = %q, want %q", got, tt.expected)
			}
		})
	}
}
