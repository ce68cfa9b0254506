// Package transfer reads and writes the key/value dump used by the mozd web
// app: one JSON object keyed by the work_tracker_* storage keys.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

// Format selects how values are written.
type Format int

const (
	// FormatRaw writes values as plain JSON (arrays, number, bool).
	FormatRaw Format = iota
	// FormatLocalStorage writes every value as a JSON string holding the
	// serialized value, exactly as browser localStorage keeps it.
	FormatLocalStorage
)

// Decode parses a dump. Each value may be raw JSON or a string holding JSON.
// Missing keys decode to empty collections.
func Decode(data []byte) (models.Dataset, error) {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to parse dump: %w", err)
	}

	var ds models.Dataset
	collections := []struct {
		key  string
		dest any
	}{
		{constants.KeyEmployers, &ds.Employers},
		{constants.KeyWorkDays, &ds.WorkDays},
		{constants.KeyContractWorks, &ds.Contracts},
		{constants.KeyPayments, &ds.Payments},
	}
	for _, c := range collections {
		raw, ok, err := value(dump, c.key)
		if err != nil {
			return models.Dataset{}, err
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, c.dest); err != nil {
			return models.Dataset{}, fmt.Errorf("failed to parse %s: %w", c.key, err)
		}
	}

	wage, ok, err := value(dump, constants.SettingDefaultWage)
	if err != nil {
		return models.Dataset{}, err
	}
	if ok {
		d, err := decimal.NewFromString(strings.Trim(string(wage), `"`))
		if err != nil {
			return models.Dataset{}, fmt.Errorf("failed to parse %s: %w", constants.SettingDefaultWage, err)
		}
		ds.Settings.DefaultWage = &d
	}

	flag, ok, err := value(dump, constants.SettingOnboardingCompleted)
	if err != nil {
		return models.Dataset{}, err
	}
	if ok {
		ds.Settings.OnboardingCompleted, _ = strconv.ParseBool(strings.Trim(string(flag), `"`))
	}

	Normalize(&ds)
	return ds, nil
}

// value returns the JSON stored under key, unwrapping one level of string
// encoding. Absent and null values report ok=false.
func value(dump map[string]json.RawMessage, key string) (json.RawMessage, bool, error) {
	raw, ok := dump[key]
	if !ok {
		return nil, false, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false, fmt.Errorf("failed to parse %s: %w", key, err)
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return nil, false, nil
		}
		raw = json.RawMessage(s)
	}
	return raw, true, nil
}

// Normalize fills in defaults the web app left implicit.
func Normalize(ds *models.Dataset) {
	if ds.Employers == nil {
		ds.Employers = []models.Employer{}
	}
	if ds.WorkDays == nil {
		ds.WorkDays = []models.WorkDay{}
	}
	if ds.Contracts == nil {
		ds.Contracts = []models.ContractWork{}
	}
	if ds.Payments == nil {
		ds.Payments = []models.Payment{}
	}
	for i := range ds.Contracts {
		c := &ds.Contracts[i]
		if c.EndDate != nil && strings.TrimSpace(*c.EndDate) == "" {
			c.EndDate = nil
		}
		if c.Status == "" {
			c.Status = constants.ContractInProgress
		}
	}
	for i := range ds.WorkDays {
		if o := ds.WorkDays[i].Overtime; o != nil && *o == 0 {
			ds.WorkDays[i].Overtime = nil
		}
	}
}

// DropOrphanContracts removes contracts whose employer is not in ds and
// returns them. The web app deleted employers without touching their
// contracts, so its dumps can carry these; mozd deletes an employer's
// contracts along with it.
func DropOrphanContracts(ds *models.Dataset) []models.ContractWork {
	known := make(map[string]bool, len(ds.Employers))
	for _, e := range ds.Employers {
		known[e.ID] = true
	}

	var dropped []models.ContractWork
	kept := ds.Contracts[:0:0]
	for _, c := range ds.Contracts {
		if known[c.EmployerID] {
			kept = append(kept, c)
		} else {
			dropped = append(dropped, c)
		}
	}
	ds.Contracts = kept
	return dropped
}

// Encode serializes ds as a dump.
func Encode(ds models.Dataset, format Format) ([]byte, error) {
	Normalize(&ds)

	values := map[string]any{
		constants.KeyEmployers:     ds.Employers,
		constants.KeyWorkDays:      ds.WorkDays,
		constants.KeyContractWorks: ds.Contracts,
		constants.KeyPayments:      ds.Payments,
	}
	if ds.Settings.DefaultWage != nil {
		values[constants.SettingDefaultWage] = json.Number(ds.Settings.DefaultWage.String())
	}
	if ds.Settings.OnboardingCompleted {
		values[constants.SettingOnboardingCompleted] = true
	}

	if format == FormatLocalStorage {
		for key, v := range values {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize %s: %w", key, err)
			}
			values[key] = string(b)
		}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize dump: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadFile decodes the dump at path.
func ReadFile(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Dataset{}, err
	}
	return Decode(data)
}

// WriteFile writes ds to path through a temporary file and rename, so a
// failed write never leaves a truncated dump behind.
func WriteFile(path string, ds models.Dataset, format Format) error {
	data, err := Encode(ds, format)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
