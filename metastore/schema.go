package metastore

import (
	"fmt"
)

// ColumnType defines the data type of a table column.
type ColumnType uint8

const (
	// ColumnTypeString is a plain string column.
	ColumnTypeString ColumnType = iota + 1
	// ColumnTypeStringMap is a string-to-string mapping column.
	ColumnTypeStringMap
)

// String returns the string representation of the ColumnType.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeString:
		return "String"
	case ColumnTypeStringMap:
		return "StringMap"
	default:
		return "Unknown"
	}
}

// Column describes a single table column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema defines the column layout of the metadata table. It is fixed for
// the lifetime of a collection and not versioned.
type Schema []Column

// DefaultSchema returns the two-column layout used by collections:
// an id string column and a meta string-map column.
func DefaultSchema() Schema {
	return Schema{
		{Name: "id", Type: ColumnTypeString},
		{Name: "meta", Type: ColumnTypeStringMap},
	}
}

// Validate checks that a row may be written under the schema.
func (s Schema) Validate(row Row) error {
	if row.ID == "" {
		return fmt.Errorf("column %q: value must be a non-empty string", s[0].Name)
	}
	return nil
}
