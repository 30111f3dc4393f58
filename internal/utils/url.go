package utils

import (
	"net/url"
	"strings"
)

// NormalizeURL completa o esquema ausente com https e remove o fragmento.
// Retorna false quando a URL não é http(s) ou não possui um host com domínio.
// Exemplo: "Example.com/blog#topo" -> "https://example.com/blog"
func NormalizeURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	if !IsValidURL(u) {
		return "", false
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	return u.String(), true
}

// IsValidURL exige esquema http/https e host com ao menos um ponto
func IsValidURL(u *url.URL) bool {
	if u == nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	if host == "" || strings.ContainsAny(host, " \t") {
		return false
	}

	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}

	return true
}

// ExtractDomain remove protocolo, "www." e caminho, preservando a porta.
// Exemplo: "https://www.Example.com/path?q=1" -> "example.com"
func ExtractDomain(rawURL string) string {
	domain := strings.TrimSpace(rawURL)
	lower := strings.ToLower(domain)

	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, prefix) {
			domain = domain[len(prefix):]
			break
		}
	}

	domain = strings.ToLower(domain)
	domain = strings.TrimPrefix(domain, "www.")

	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}

	return domain
}
