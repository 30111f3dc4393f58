package models

// EndpointStats agrega contadores de uso de um endpoint em um mês
type EndpointStats struct {
	Endpoint    string `json:"endpoint"`
	CacheHits   int64  `json:"cacheHits"`
	CacheMisses int64  `json:"cacheMisses"`
	Errors      int64  `json:"errors"`
}

// UsageStats é a resposta de /statistics
type UsageStats struct {
	Month     string          `json:"month" example:"2024-05"`
	Endpoints []EndpointStats `json:"endpoints"`
	Storage   string          `json:"storage" enums:"postgres,memory"`
}
