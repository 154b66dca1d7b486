package models

import "time"

// QualityCheck is one validation rule on a table column.
type QualityCheck struct {
	ID                  int64     `json:"id"`
	TableName           string    `json:"tableName"`
	AttributeName       string    `json:"attributeName"`
	ValidationType      string    `json:"validationType"`
	ReferenceTable      *string   `json:"referenceTable"`
	DefaultValue        *string   `json:"defaultValue"`
	ThresholdPercentage float64   `json:"thresholdPercentage"`
	ActiveFlag          string    `json:"activeFlag"`
	CreatedDate         time.Time `json:"createdDate"`
	UpdatedDate         time.Time `json:"updatedDate"`
}

// QualityFilters narrows quality-check listings. Zero values mean no filter.
type QualityFilters struct {
	ValidationType string
	TableName      string
}
