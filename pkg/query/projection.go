// Package query provides a fluent SQL builder for MySQL with projection maps
// that translate domain field names to table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps domain field names to the columns of an aliased table.
type ProjectionMap struct {
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection for the given table and alias.
func NewProjectionMap(table, alias string) *ProjectionMap {
	return &ProjectionMap{
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column under a domain field name. Registration order
// determines the column order in generated SELECT clauses.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	return p
}

// Table returns the aliased table reference for FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s %s", p.table, p.alias)
}

// Columns returns the full projected column list for SELECT clauses.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// Column returns the qualified column for a domain field name.
// Unknown fields resolve to an empty string.
func (p *ProjectionMap) Column(field string) string {
	return p.fields[field]
}
