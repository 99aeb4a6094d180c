package domain

// AppMetrics is the application metrics snapshot served by
// GET /v1/metrics/app.
type AppMetrics struct {
	TotalRequests       int64   `json:"total_requests"`
	ErrorRate           float64 `json:"error_rate"`
	CacheHitRate        float64 `json:"cache_hit_rate"`
	AlertsWarning       int64   `json:"alerts_warning"`
	AlertsError         int64   `json:"alerts_error"`
	TransactionsCreated int64   `json:"transactions_created"`
	Period              string  `json:"period"`
}
