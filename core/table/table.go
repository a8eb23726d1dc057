package table

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Origin identifies where a table was loaded from.
type Origin string

const (
	// OriginLocal is a file in the local data directory.
	OriginLocal Origin = "local"
	// OriginStorage is an object in the configured storage bucket.
	OriginStorage Origin = "storage"
	// OriginRemote is a file fetched over HTTP.
	OriginRemote Origin = "remote"
	// OriginMemory is a table built in code (tests, merged tables).
	OriginMemory Origin = "memory"
)

// Table is an untyped, header-addressed grid of cells as read from CSV or XLSX.
// Tables are treated as immutable once loaded; transformations return copies.
type Table struct {
	// Name is the file or object name the table was read from.
	Name string
	// Origin is the location class the table came from.
	Origin Origin
	// Columns holds the header row.
	Columns []string
	// Rows holds the data rows. Rows may be shorter than Columns.
	Rows [][]string
}

// New builds an in-memory table. Rows are copied.
func New(name string, columns []string, rows [][]string) *Table {
	t := &Table{
		Name:    name,
		Origin:  OriginMemory,
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = append([]string(nil), r...)
	}
	return t
}

// Empty reports whether the table is nil or has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
// Matching is exact after trimming surrounding whitespace.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == column {
			return i
		}
	}
	return -1
}

// Has reports whether every named column is present.
func (t *Table) Has(columns ...string) bool {
	for _, c := range columns {
		if t.Index(c) < 0 {
			return false
		}
	}
	return true
}

// Cell returns the value at column idx of row, or "" when out of range.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Rename returns a copy of the table whose columns are mapped through the synonym table.
func (t *Table) Rename(s Synonyms) *Table {
	if t == nil {
		return nil
	}
	out := *t
	out.Columns = make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out.Columns[i] = s.Canonical(c)
	}
	return &out
}

// Concat stacks the rows of several tables under the header of the first non-empty one.
// Columns are aligned by name; missing cells become "". Returns nil when all are empty.
func Concat(name string, tables ...*Table) *Table {
	var out *Table
	for _, t := range tables {
		if t.Empty() {
			continue
		}
		if out == nil {
			out = New(name, t.Columns, nil)
			out.Origin = t.Origin
		}
		positions := make([]int, len(out.Columns))
		for i, c := range out.Columns {
			positions[i] = t.Index(strings.TrimSpace(c))
		}
		for _, r := range t.Rows {
			row := make([]string, len(out.Columns))
			for i, p := range positions {
				row[i] = Cell(r, p)
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Fingerprint returns a content hash of the table, used to key memoized reports.
// A nil table has the empty fingerprint. The name is not part of the hash.
func (t *Table) Fingerprint() string {
	if t == nil {
		return ""
	}
	h := sha256.New()
	write := func(cells []string) {
		for _, c := range cells {
			h.Write([]byte(c))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	write(t.Columns)
	for _, r := range t.Rows {
		write(r)
	}
	return hex.EncodeToString(h.Sum(nil))
}
