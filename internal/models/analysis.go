package models

// AnalysisResult é a resposta de /analyze
type AnalysisResult struct {
	Result   string `json:"result"`
	Cached   bool   `json:"cached"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}
