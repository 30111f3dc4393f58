package models

const (
	BacklinkSourceGoogle = "google"
	BacklinkSourceSerp   = "serp"
)

// BacklinkRecord é um link externo apontando para o domínio analisado
type BacklinkRecord struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source" enums:"google,serp"`
}

// BacklinkSources conta quantos registros cada provedor devolveu antes da deduplicação
type BacklinkSources struct {
	Google int `json:"google"`
	Serp   int `json:"serp"`
}

// BacklinkReport é a resposta de /backlinks
type BacklinkReport struct {
	Backlinks      []BacklinkRecord `json:"backlinks"`
	DAScore        int              `json:"daScore"`
	TotalBacklinks int              `json:"totalBacklinks"`
	Sources        BacklinkSources  `json:"sources"`
	Cached         bool             `json:"cached"`
	// Degraded indica que algum provedor falhou ou nenhum está configurado
	Degraded bool `json:"-"`
}
