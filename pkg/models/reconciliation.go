package models

import "time"

// Reconciliation comparison modes.
const (
	ReconTypeCount  = "count"
	ReconTypeSum    = "sum"
	ReconTypeAmount = "amount"
	ReconTypeData   = "data"
)

// Reconciliation pairs a source and a target query whose results are
// compared within a tolerance. Connection ids are nullable references to
// stored connections; the queries are user-authored SQL kept verbatim.
type Reconciliation struct {
	ID                  int64     `json:"id"`
	ReconName           string    `json:"reconName"`
	SourceConnectionID  *int64    `json:"sourceConnectionId"`
	TargetConnectionID  *int64    `json:"targetConnectionId"`
	SourceQuery         string    `json:"sourceQuery"`
	TargetQuery         string    `json:"targetQuery"`
	ReconType           string    `json:"reconType"`
	ThresholdPercentage float64   `json:"thresholdPercentage"`
	ActiveFlag          string    `json:"activeFlag"`
	CreatedDate         time.Time `json:"createdDate"`
	UpdatedDate         time.Time `json:"updatedDate"`
}

// ReconciliationFilters narrows reconciliation listings. Zero values mean
// no filter.
type ReconciliationFilters struct {
	ReconType string
}
