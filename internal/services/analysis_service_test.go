package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/httpclient"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/llm"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/retry"
)

// fakeLLM devolve as respostas na ordem; a última se repete
type fakeLLM struct {
	mu        sync.Mutex
	name      string
	responses []fakeReply
	prompts   []llm.Prompt
	models    []string
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeLLM) Name() string { return f.name }

func (f *fakeLLM) PreferredModels() []string { return []string{f.name + "-model"} }

func (f *fakeLLM) Generate(ctx context.Context, model string, prompt llm.Prompt) (llm.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	reply := f.responses[idx]
	if reply.err != nil {
		return llm.Completion{}, reply.err
	}
	return llm.Completion{Text: reply.text}, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func validAnalysisText() string {
	var b strings.Builder
	b.WriteString("# SEO Analysis for example.com\n\nThis report reviews the main ranking factors of the page.\n")
	for _, section := range []string{"Content Depth and Quality", "URL Structure", "H1 Title Tag", "Internal Links"} {
		b.WriteString("\n## " + section + "\n**Analysis:**\n")
		for i := 0; i < 3; i++ {
			b.WriteString("- The page could be improved with more specific and descriptive content blocks.\n")
		}
		b.WriteString("\n**Action Items:**\n- ✅ Add structured data and refine headings for clarity.\n")
	}
	return b.String()
}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func testRequest(t *testing.T, url, keyword string) *models.AnalysisRequest {
	t.Helper()
	req := &models.AnalysisRequest{URL: url, Keyword: keyword}
	if err := req.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	return req
}

func TestValidAnalysisTextFixture(t *testing.T) {
	if ok, stats := HasMinimumContent(validAnalysisText()); !ok {
		t.Fatalf("fixture should be valid, stats = %+v", stats)
	}
}

func TestAnalyzeReturnsValidPrimaryResult(t *testing.T) {
	primary := &fakeLLM{name: "primary", responses: []fakeReply{{text: validAnalysisText()}}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy()})
	got, err := svc.Analyze(context.Background(), testRequest(t, "example.com", "seo"))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if got.Result != validAnalysisText() {
		t.Error("result should be the primary text unchanged")
	}
	if got.Provider != "primary" || got.Model != "primary-model" {
		t.Errorf("provider/model = %s/%s", got.Provider, got.Model)
	}
	if primary.calls() != 1 {
		t.Errorf("calls = %d, want 1", primary.calls())
	}
	if !strings.Contains(primary.prompts[0].User, `"seo"`) {
		t.Error("prompt should mention the keyword")
	}
}

func TestAnalyzeRetriesShortResponses(t *testing.T) {
	primary := &fakeLLM{name: "primary", responses: []fakeReply{
		{text: "short"},
		{text: validAnalysisText()},
	}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy()})
	got, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if primary.calls() != 2 {
		t.Errorf("calls = %d, want 2", primary.calls())
	}
	if !strings.Contains(strings.ToLower(got.Result), "seo analysis") {
		t.Error("result should contain the validated text")
	}
}

func TestAnalyzeExhaustsRetriesWithValidationError(t *testing.T) {
	primary := &fakeLLM{name: "primary", responses: []fakeReply{{text: "too short"}}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy()})
	_, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))

	var validationErr *ContentValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ContentValidationError, got %v", err)
	}
	if httpclient.IsRetryable(err) {
		t.Error("exhausted validation should be terminal")
	}
	if primary.calls() != 3 {
		t.Errorf("calls = %d, want MaxAttempts (3)", primary.calls())
	}
}

func TestAnalyzeFallsBackOnQuotaError(t *testing.T) {
	quota := &llm.QuotaError{Provider: "primary", Err: errors.New("credit balance is too low")}
	primary := &fakeLLM{name: "primary", responses: []fakeReply{{err: quota}}}
	fallback := &fakeLLM{name: "fallback", responses: []fakeReply{
		{text: validAnalysisText()},
		{text: "Extra technical notes"},
	}}

	svc := NewAnalysisService(primary, fallback, AnalysisOptions{Policy: testPolicy(), Supplementary: true})
	got, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if primary.calls() != 1 {
		t.Errorf("quota errors must not be retried, primary calls = %d", primary.calls())
	}
	if fallback.calls() != 2 {
		t.Errorf("fallback should serve both prompts, calls = %d", fallback.calls())
	}
	if got.Provider != "fallback" {
		t.Errorf("Provider = %s, want fallback", got.Provider)
	}
	want := validAnalysisText() + SupplementarySeparator + "Extra technical notes"
	if got.Result != want {
		t.Errorf("combined result mismatch:\n%s", got.Result)
	}
}

func TestAnalyzeQuotaWithoutFallbackIsTerminal(t *testing.T) {
	quota := &llm.QuotaError{Provider: "primary", Err: errors.New("quota exceeded")}
	primary := &fakeLLM{name: "primary", responses: []fakeReply{{err: quota}}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy()})
	_, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if !llm.IsQuotaError(err) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if primary.calls() != 1 {
		t.Errorf("calls = %d, want 1", primary.calls())
	}
}

func TestAnalyzeSupplementaryGoesToSecondary(t *testing.T) {
	primary := &fakeLLM{name: "primary", responses: []fakeReply{{text: validAnalysisText()}}}
	fallback := &fakeLLM{name: "fallback", responses: []fakeReply{{text: "More insights"}}}

	svc := NewAnalysisService(primary, fallback, AnalysisOptions{Policy: testPolicy(), Supplementary: true})
	got, err := svc.Analyze(context.Background(), testRequest(t, "example.com", "café"))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if primary.calls() != 1 || fallback.calls() != 1 {
		t.Errorf("calls primary=%d fallback=%d, want 1/1", primary.calls(), fallback.calls())
	}
	if !strings.Contains(fallback.prompts[0].User, "Target Keyword: café") {
		t.Errorf("supplementary prompt should carry the keyword: %s", fallback.prompts[0].User)
	}
	if !strings.HasSuffix(got.Result, SupplementarySeparator+"More insights") {
		t.Error("result should end with the supplementary section")
	}
}

func TestAnalyzeSupplementaryFailureFailsRequest(t *testing.T) {
	primary := &fakeLLM{name: "primary", responses: []fakeReply{
		{text: validAnalysisText()},
		{text: "   "},
	}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy(), Supplementary: true})
	_, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if err == nil {
		t.Fatal("expected error when the supplementary text is empty")
	}
	if primary.calls() != 1+3 {
		t.Errorf("calls = %d, want 4", primary.calls())
	}
}

func TestAnalyzeRetriesRateLimitedCalls(t *testing.T) {
	rateLimited := &httpclient.HTTPError{Provider: "primary", Status: 429}
	primary := &fakeLLM{name: "primary", responses: []fakeReply{
		{err: rateLimited},
		{text: validAnalysisText()},
	}}

	svc := NewAnalysisService(primary, nil, AnalysisOptions{Policy: testPolicy()})
	if _, err := svc.Analyze(context.Background(), testRequest(t, "example.com", "")); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if primary.calls() != 2 {
		t.Errorf("calls = %d, want 2", primary.calls())
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	slow := &blockingLLM{}
	svc := NewAnalysisService(slow, nil, AnalysisOptions{Policy: testPolicy(), Timeout: 20 * time.Millisecond})

	_, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if !errors.Is(err, models.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !httpclient.IsRetryable(err) {
		t.Error("timeouts should be retryable for the client")
	}
}

func TestAnalyzeWithoutProviders(t *testing.T) {
	svc := NewAnalysisService(nil, nil, AnalysisOptions{})
	if svc.Enabled() {
		t.Error("Enabled() should be false")
	}
	_, err := svc.Analyze(context.Background(), testRequest(t, "example.com", ""))
	if !errors.Is(err, models.ErrProviderDisabled) {
		t.Errorf("expected ErrProviderDisabled, got %v", err)
	}
}

type blockingLLM struct{}

func (b *blockingLLM) Name() string { return "slow" }

func (b *blockingLLM) PreferredModels() []string { return []string{"slow-model"} }

func (b *blockingLLM) Generate(ctx context.Context, model string, prompt llm.Prompt) (llm.Completion, error) {
	<-ctx.Done()
	return llm.Completion{}, ctx.Err()
}
