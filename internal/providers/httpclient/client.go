// Package httpclient é o adaptador comum para chamadas JSON a provedores externos.
//
// Cada Client pertence a um provedor e carrega seu próprio circuit breaker.
// Respostas não-2xx viram *HTTPError, JSON inválido vira *FormatError e
// prazos expirados viram models.ErrTimeout.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

const maxResponseBody = 10 << 20

// Request descreve uma chamada a um provedor
type Request struct {
	Method  string
	URL     string
	Query   url.Values
	Headers map[string]string
	// Body é serializado como JSON quando não nulo
	Body any
}

// Response traz os metadados da resposta já consumida
type Response struct {
	Status    int
	Header    http.Header
	RateLimit RateLimit
	Body      []byte
}

// Validator é implementado por respostas que exigem campos obrigatórios
type Validator interface {
	Validate() error
}

type Client struct {
	provider   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// New cria um cliente para o provedor. timeout limita cada chamada individual.
func New(provider string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        provider,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return !countsAsBreakerFailure(err)
		},
	}

	return &Client{
		provider:   provider,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *Client) Provider() string {
	return c.provider
}

// DoJSON executa a chamada e decodifica a resposta em out (se não nulo)
func (c *Client) DoJSON(ctx context.Context, req Request, out any) (*Response, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return resp, err
	}

	if out == nil {
		return resp, nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return resp, &FormatError{Provider: c.provider, Reason: "malformed JSON", Err: err}
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return resp, &FormatError{Provider: c.provider, Reason: "missing fields", Err: err}
		}
	}

	return resp, nil
}

// Do executa a chamada e devolve o corpo bruto. Status não-2xx retorna *HTTPError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := otel.Tracer("provider").Start(ctx, "provider.call")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider.name", c.provider),
		attribute.String("http.method", req.Method),
	)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.execute(ctx, req)
		if resp == nil {
			return nil, err
		}
		return resp, err
	})

	resp, _ := result.(*Response)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.Status))
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%s: circuito aberto: %w", c.provider, gobreaker.ErrOpenState)
		}
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}

	span.SetStatus(codes.Ok, "")
	return resp, nil
}

func (c *Client) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}

	resp := &Response{
		Status:    httpResp.StatusCode,
		Header:    httpResp.Header,
		RateLimit: ParseRateLimit(httpResp.Header),
		Body:      body,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, &HTTPError{
			Provider:  c.provider,
			Status:    httpResp.StatusCode,
			Body:      string(body),
			RateLimit: resp.RateLimit,
		}
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: URL inválida: %w", c.provider, err)
	}
	if len(req.Query) > 0 {
		q := target.Query()
		for key, values := range req.Query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: erro ao serializar requisição: %w", c.provider, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: erro ao criar requisição: %w", c.provider, err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// wrapTransportError separa prazo expirado de falhas de rede
func (c *Client) wrapTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w: %w", c.provider, models.ErrTimeout, ctxErr)
		}
		return fmt.Errorf("%s: %w", c.provider, ctxErr)
	}
	return &TransportError{Provider: c.provider, Err: err}
}
