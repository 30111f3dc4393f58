package httpclient

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// RateLimit reúne os cabeçalhos de limite devolvidos pelo provedor.
// Valores ausentes ou não numéricos ficam em zero.
type RateLimit struct {
	Remaining       int
	RemainingTokens int
	Reset           int
	RetryAfter      int
}

// resets maiores que isso são timestamps absolutos e não servem como atraso
const maxResetDelaySeconds = 3600

// maxHeaderValue limita valores absurdos antes da conversão para int
const maxHeaderValue = math.MaxInt32

func ParseRateLimit(h http.Header) RateLimit {
	return RateLimit{
		Remaining:       headerInt(h, "x-ratelimit-remaining"),
		RemainingTokens: headerInt(h, "x-ratelimit-remaining-tokens"),
		Reset:           headerInt(h, "x-ratelimit-reset"),
		RetryAfter:      headerInt(h, "retry-after"),
	}
}

// DelaySeconds sugere a espera antes da próxima tentativa, ou 0 se não houver dica
func (r RateLimit) DelaySeconds() int {
	if r.RetryAfter > 0 {
		return r.RetryAfter
	}
	if r.Reset > 0 && r.Reset <= maxResetDelaySeconds {
		return r.Reset
	}
	return 0
}

func headerInt(h http.Header, key string) int {
	if h == nil {
		return 0
	}

	value := strings.TrimSpace(h.Get(key))
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > maxHeaderValue {
		return maxHeaderValue
	}
	return int(math.Ceil(f))
}
