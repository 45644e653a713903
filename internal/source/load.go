package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// Request names a dataset and, optionally, its labels.
type Request struct {
	DataPath   string
	LabelsPath string
	Query      string // SQLite only
}

// Dataset is everything needed to mount a chart.
type Dataset struct {
	Rows   []core.RawRow
	Labels core.LabelTable
}

func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func Load(ctx context.Context, req Request) (Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	if IsSQLite(req.DataPath) {
		ds.Rows, err = LoadSQLite(ctx, req.DataPath, req.Query)
	} else {
		ds.Rows, err = LoadCSV(req.DataPath)
	}
	if err != nil {
		return Dataset{}, err
	}
	if req.LabelsPath != "" {
		if ds.Labels, err = LoadLabels(req.LabelsPath); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}
