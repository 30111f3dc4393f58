package models

import "errors"

var (
	ErrURLRequired = errors.New("URL é obrigatória")
	ErrInvalidURL  = errors.New("URL inválida")
	ErrInvalidBody = errors.New("corpo da requisição inválido")

	// ErrTimeout sinaliza que o prazo da requisição expirou antes de uma resposta válida
	ErrTimeout = errors.New("tempo limite excedido")

	ErrProviderDisabled = errors.New("provedor não configurado")
	ErrNoScore          = errors.New("pontuação não encontrada")
	ErrReportsDisabled  = errors.New("arquivo de relatórios desabilitado")
)
