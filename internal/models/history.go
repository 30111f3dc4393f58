package models

import "time"

// HistoryEntry registra uma análise solicitada
type HistoryEntry struct {
	URL       string    `json:"url"`
	Keyword   string    `json:"keyword,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
