package spanner

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaDDL string

// SchemaStatements returns the DDL statements of schema.sql in file order,
// without comments or trailing semicolons.
func SchemaStatements() []string {
	var b strings.Builder
	for _, line := range strings.Split(schemaDDL, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
