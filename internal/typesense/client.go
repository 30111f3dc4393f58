// Package typesense configura o cliente do arquivo de relatórios.
package typesense

import (
	"log"
	"time"

	"github.com/typesense/typesense-go/v3/typesense"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/config"
)

const connectionTimeout = 5 * time.Second

// NewClient cria o cliente Typesense. Retorna nil quando o arquivo está desabilitado.
func NewClient(cfg config.ReportsConfig) *typesense.Client {
	if !cfg.Enabled() {
		return nil
	}

	log.Printf("[Typesense] conectando em %s (collection %s)", cfg.ServerURL(), cfg.Collection)

	return typesense.NewClient(
		typesense.WithServer(cfg.ServerURL()),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(connectionTimeout),
	)
}
