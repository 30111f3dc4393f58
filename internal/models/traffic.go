package models

// TrafficSnapshot resume o tráfego mais recente de um domínio
type TrafficSnapshot struct {
	GlobalRank       int     `json:"globalRank"`
	CountryRank      int     `json:"countryRank"`
	Category         string  `json:"category"`
	TotalVisits      float64 `json:"totalVisits"`
	BounceRate       float64 `json:"bounceRate"`
	PageViews        float64 `json:"pageViews"`
	AvgVisitDuration float64 `json:"avgVisitDuration"`
	LastUpdated      string  `json:"lastUpdated" example:"2024-05"`
	// Degraded marca o snapshot zerado usado quando a SimilarWeb não responde
	Degraded bool `json:"-"`
}

// HistoricalPoint é uma amostra mensal
type HistoricalPoint struct {
	Date             string  `json:"date" example:"2024-05"`
	Visits           float64 `json:"visits"`
	BounceRate       float64 `json:"bounceRate"`
	PageViews        float64 `json:"pageViews"`
	AvgVisitDuration float64 `json:"avgVisitDuration"`
}

type CompetitorRecord struct {
	Domain      string  `json:"domain"`
	GlobalRank  int     `json:"globalRank"`
	TotalVisits float64 `json:"totalVisits"`
	Category    string  `json:"category"`
}

// TrendDeltas compara os dois últimos pontos do histórico.
// VisitsChange é percentual; os demais são diferenças absolutas.
type TrendDeltas struct {
	VisitsChange     float64 `json:"visitsChange"`
	BounceRateChange float64 `json:"bounceRateChange"`
	PageViewsChange  float64 `json:"pageViewsChange"`
	DurationChange   float64 `json:"durationChange"`
}

// TrafficResponse é a resposta de /traffic
type TrafficResponse struct {
	TrafficSnapshot
	Timestamp string `json:"timestamp"`
	Cached    bool   `json:"cached"`
}

// DetailedTraffic é a resposta de /traffic/detailed
type DetailedTraffic struct {
	Current     TrafficSnapshot    `json:"current"`
	Historical  []HistoricalPoint  `json:"historical"`
	Competitors []CompetitorRecord `json:"competitors"`
	Trends      TrendDeltas        `json:"trends"`
	Timestamp   string             `json:"timestamp"`
	Cached      bool               `json:"cached"`
	Degraded    bool               `json:"-"`
}
