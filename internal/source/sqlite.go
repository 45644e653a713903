package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// DefaultQuery reads a wide table with one timestamp column and one column
// per measurement.
const DefaultQuery = "SELECT * FROM measurements"

func LoadSQLite(ctx context.Context, path, query string) ([]core.RawRow, error) {
	if query == "" {
		query = DefaultQuery
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	rows, err := QueryRows(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	return rows, nil
}

// QueryRows runs query and turns every result row into a RawRow, one column
// per result column.
func QueryRows(ctx context.Context, db *sql.DB, query string) ([]core.RawRow, error) {
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	header, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var out []core.RawRow
	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(out)+1, err)
		}
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = cellString(v)
		}
		out = append(out, core.NewRawRow(header, strs))
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.UTC().Format(core.TimestampLayout)
	default:
		return fmt.Sprint(x)
	}
}
