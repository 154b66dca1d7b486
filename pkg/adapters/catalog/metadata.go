package catalog

// Descriptor carries everything needed to reach an external database.
// It is built from a stored connection record at each call site; the
// catalog package never reads the application store itself.
type Descriptor struct {
	Engine   string
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// ColumnMetadata describes one column of an external table, shaped for
// the dictionary and pipeline forms. Length, precision and scale are nil
// when the catalog reports NULL for them (non-character, non-numeric types).
type ColumnMetadata struct {
	Name            string `json:"name"`
	DataType        string `json:"dataType"`
	Length          *int   `json:"length"`
	Precision       *int   `json:"precision"`
	Scale           *int   `json:"scale"`
	IsPrimaryKey    bool   `json:"isPrimaryKey"`
	IsForeignKey    bool   `json:"isForeignKey"`
	ForeignKeyTable string `json:"foreignKeyTable,omitempty"`
	IsNotNull       bool   `json:"isNotNull"`
}

// ColumnWithType is the reduced name+type pair returned by the
// columns-with-types endpoint.
type ColumnWithType struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}
