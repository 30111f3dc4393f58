// Package retry implementa a política de novas tentativas das chamadas a provedores.
//
// O atraso entre tentativas é min(base * 2^(n-1), MaxDelay), em que n é o
// número de falhas até o momento e base é a dica de espera do provedor
// (quando a falha a informa) ou Policy.BaseDelay.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// RetryAfterHinter é implementado por erros que carregam uma sugestão de espera
type RetryAfterHinter interface {
	RetryAfter() time.Duration
}

// Permanent interrompe as tentativas imediatamente, devolvendo err
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Operation recebe o número da tentativa, começando em 1
type Operation[T any] func(ctx context.Context, attempt int) (T, error)

// Do executa op até obter sucesso, esgotar MaxAttempts, receber um erro
// Permanent ou o contexto expirar. Prazo expirado é devolvido como models.ErrTimeout.
func Do[T any](ctx context.Context, p Policy, name string, op Operation[T]) (T, error) {
	p = p.withDefaults()
	bo := newExponential(p)

	attempt := 0
	operation := func() (T, error) {
		attempt++
		result, err := op(ctx, attempt)
		bo.hint = hintFrom(err)
		return result, err
	}

	notify := func(err error, next time.Duration) {
		log.Printf("[Retry] %s: tentativa %d/%d falhou: %v; nova tentativa em %s", name, attempt, p.MaxAttempts, err, next)
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
		backoff.WithNotify(notify),
	)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, models.ErrTimeout) {
		err = fmt.Errorf("%s: %w: %w", name, models.ErrTimeout, err)
	}

	return result, err
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	return p
}

// Delay calcula a espera após a n-ésima falha
func (p Policy) Delay(failures int, base time.Duration) time.Duration {
	if base <= 0 {
		base = p.BaseDelay
	}
	if failures < 1 {
		failures = 1
	}

	delay := base
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func hintFrom(err error) time.Duration {
	var hinter RetryAfterHinter
	if errors.As(err, &hinter) {
		return hinter.RetryAfter()
	}
	return 0
}

// exponential implementa backoff.BackOff com a base ajustável por tentativa
type exponential struct {
	policy   Policy
	failures int
	hint     time.Duration
}

func newExponential(p Policy) *exponential {
	return &exponential{policy: p}
}

func (e *exponential) NextBackOff() time.Duration {
	e.failures++
	return e.policy.Delay(e.failures, e.hint)
}

func (e *exponential) Reset() {
	e.failures = 0
	e.hint = 0
}
