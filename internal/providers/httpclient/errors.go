package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

const maxErrorBody = 500

// HTTPError é uma resposta não-2xx de um provedor
type HTTPError struct {
	Provider  string
	Status    int
	Body      string
	RateLimit RateLimit
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Status, body)
}

// RateLimited indica HTTP 429
func (e *HTTPError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// FormatError indica uma resposta 2xx com JSON inválido ou campos ausentes
type FormatError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid response format: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: invalid response format: %s", e.Provider, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// TransportError é uma falha de rede antes de qualquer resposta
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

var retryableMarkers = []string{
	"rate limit", "too many requests", "timeout", "timed out",
	"network", "temporar", "unavailable", "tempo limite",
}

// IsRetryable indica se o cliente deve tentar novamente mais tarde
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, models.ErrTimeout) || errors.Is(err, gobreaker.ErrOpenState) {
		return true
	}

	// demais status caem na busca por marcadores na mensagem
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// countsAsBreakerFailure considera apenas falhas do lado do provedor
func countsAsBreakerFailure(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status >= 500
	}

	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// RetryAfter expõe a dica de espera do provedor para respostas 429
func (e *HTTPError) RetryAfter() time.Duration {
	if !e.RateLimited() {
		return 0
	}
	return time.Duration(e.RateLimit.DelaySeconds()) * time.Second
}
