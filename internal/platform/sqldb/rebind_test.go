package sqldb

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite unchanged", DialectSQLite, "UPDATE orders SET status = ? WHERE id = ?", "UPDATE orders SET status = ? WHERE id = ?"},
		{"postgres numbered", DialectPostgres, "UPDATE orders SET status = ? WHERE id = ? AND status = ?", "UPDATE orders SET status = $1 WHERE id = $2 AND status = $3"},
		{"postgres no params", DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rebind(tt.dialect, tt.query); got != tt.want {
				t.Errorf("rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}
