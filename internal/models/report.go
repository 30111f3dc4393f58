package models

// ReportDocument é uma análise arquivada no Typesense
type ReportDocument struct {
	ID        string `json:"id"`
	Domain    string `json:"domain"`
	URL       string `json:"url"`
	Keyword   string `json:"keyword,omitempty"`
	Summary   string `json:"summary"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	CreatedAt int64  `json:"created_at"`
}

// ReportSearchResponse é a resposta de /reports
type ReportSearchResponse struct {
	Enabled bool             `json:"enabled"`
	Found   int              `json:"found"`
	Page    int              `json:"page"`
	PerPage int              `json:"perPage"`
	Reports []ReportDocument `json:"reports"`
}
