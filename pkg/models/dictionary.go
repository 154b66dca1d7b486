package models

import "time"

// DictionaryEntry is one governed column in the data dictionary.
// ConfigKey optionally ties the entry to a pipeline by numeric id.
// The key and null flags reuse the Y/N text convention.
type DictionaryEntry struct {
	ID             int64     `json:"id"`
	ConfigKey      *int64    `json:"configKey"`
	TableName      string    `json:"tableName"`
	AttributeName  string    `json:"attributeName"`
	DataType       string    `json:"dataType"`
	Length         *int      `json:"length"`
	Precision      *int      `json:"precision"`
	Scale          *int      `json:"scale"`
	PrimaryKeyFlag string    `json:"primaryKeyFlag"`
	ForeignKeyFlag string    `json:"foreignKeyFlag"`
	NullableFlag   string    `json:"nullableFlag"`
	Description    string    `json:"description"`
	ActiveFlag     string    `json:"activeFlag"`
	CreatedDate    time.Time `json:"createdDate"`
	UpdatedDate    time.Time `json:"updatedDate"`
}

// DictionaryFilters narrows dictionary listings. Zero values mean no filter.
type DictionaryFilters struct {
	ConfigKey *int64
	TableName string
}
