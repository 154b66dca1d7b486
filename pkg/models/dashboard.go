package models

// DashboardStats aggregates entity counts for the overview page.
// PipelinesByLayer is keyed by execution layer (Bronze/Silver/Gold).
type DashboardStats struct {
	Connections       int64            `json:"connections"`
	ActiveConnections int64            `json:"activeConnections"`
	Pipelines         int64            `json:"pipelines"`
	ActivePipelines   int64            `json:"activePipelines"`
	DictionaryEntries int64            `json:"dictionaryEntries"`
	Reconciliations   int64            `json:"reconciliations"`
	QualityChecks     int64            `json:"qualityChecks"`
	PipelinesByLayer  map[string]int64 `json:"pipelinesByLayer"`
}
