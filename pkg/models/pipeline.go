package models

import "time"

// Execution layers in the medallion naming the pipeline forms use.
const (
	LayerBronze = "Bronze"
	LayerSilver = "Silver"
	LayerGold   = "Gold"
)

// Pipeline represents one configured data movement between a source and
// a target. Source and target systems are free text (the UI may render a
// stored connection id there); the server does not enforce referential
// integrity on them. The schema fields stay empty for file-based systems,
// where SourceTable/TargetTable carry a file name instead.
type Pipeline struct {
	ID               int64     `json:"id"`
	PipelineName     string    `json:"pipelineName"`
	ExecutionLayer   string    `json:"executionLayer"`
	SourceSystem     string    `json:"sourceSystem"`
	SourceType       string    `json:"sourceType"`
	SourceSchema     string    `json:"sourceSchema"`
	SourceTable      string    `json:"sourceTable"`
	TargetSystem     string    `json:"targetSystem"`
	TargetType       string    `json:"targetType"`
	TargetSchema     string    `json:"targetSchema"`
	TargetTable      string    `json:"targetTable"`
	LoadType         string    `json:"loadType"`
	PrimaryKeyColumn string    `json:"primaryKeyColumn"`
	ActiveFlag       string    `json:"activeFlag"`
	CreatedDate      time.Time `json:"createdDate"`
	UpdatedDate      time.Time `json:"updatedDate"`
}

// PipelineFilters narrows pipeline listings. Search matches pipeline names
// case-insensitively; zero values mean no filter.
type PipelineFilters struct {
	ExecutionLayer string
	LoadType       string
	ActiveFlag     string
	Search         string
}
