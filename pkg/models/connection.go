package models

import "time"

// Connection status values. Rows are created Pending; only the
// test-connection operation moves the status afterwards.
const (
	ConnectionStatusPending = "Pending"
	ConnectionStatusActive  = "Active"
	ConnectionStatusFailed  = "Failed"
)

// Connection represents a stored external database connection.
// EngineType is free-form; "postgresql" and "mysql" (any casing) get live
// catalog introspection, everything else gets placeholder metadata.
type Connection struct {
	ID             int64      `json:"id"`
	ConnectionName string     `json:"connectionName"`
	EngineType     string     `json:"engineType"`
	Host           string     `json:"host"`
	Port           int        `json:"port"`
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	DatabaseName   string     `json:"databaseName"`
	Status         string     `json:"status"`
	LastSync       *time.Time `json:"lastSync"`
	ActiveFlag     string     `json:"activeFlag"`
	CreatedDate    time.Time  `json:"createdDate"`
	UpdatedDate    time.Time  `json:"updatedDate"`
}

// Redacted returns a copy safe for serialization: the stored password is
// replaced with an empty string. Every read path must go through this.
func (c Connection) Redacted() *Connection {
	c.Password = ""
	return &c
}

// ConnectionFilters narrows connection listings. Zero values mean no filter.
type ConnectionFilters struct {
	EngineType string
	Status     string
	ActiveFlag string
}
