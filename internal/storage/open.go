package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/storage/sqlite"
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindJSON   Kind = "json"
)

// KindOf picks the backend for a path: .json files use the JSON store,
// anything else is a SQLite database.
func KindOf(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return KindJSON
	}
	return KindSQLite
}

// Open returns an unloaded store for path. Call Init or Load before use.
func Open(path string) Provider {
	if KindOf(path) == KindJSON {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}

// LoadDataset reads every collection and the settings from p.
func LoadDataset(p Provider) (models.Dataset, error) {
	var ds models.Dataset
	var err error

	if ds.Employers, err = p.GetAllEmployers(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load employers: %w", err)
	}
	if ds.WorkDays, err = p.GetAllWorkDays(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load work days: %w", err)
	}
	if ds.Contracts, err = p.GetAllContracts(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load contracts: %w", err)
	}
	if ds.Payments, err = p.GetAllPayments(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load payments: %w", err)
	}
	if ds.Settings, err = p.GetSettings(); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return ds, nil
}
