package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/transfer"
)

var errNotLoaded = errors.New("storage not loaded")

// JSONStore keeps everything in one JSON file laid out like the web app's
// localStorage dump. Every mutation rewrites the whole file.
type JSONStore struct {
	path string
	data *models.Dataset
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	empty := models.Dataset{}
	transfer.Normalize(&empty)
	return s.commit(empty)
}

func (s *JSONStore) Load() error {
	if s.data != nil {
		return nil
	}

	ds, err := transfer.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.data = &ds
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// commit writes next to disk and only then makes it current.
func (s *JSONStore) commit(next models.Dataset) error {
	if err := transfer.WriteFile(s.path, next, transfer.FormatRaw); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	s.data = &next
	return nil
}

// snapshot returns a copy of the current dataset whose slices can be
// modified without touching the committed state.
func (s *JSONStore) snapshot() (models.Dataset, error) {
	if s.data == nil {
		return models.Dataset{}, errNotLoaded
	}
	return models.Dataset{
		Employers: slices.Clone(s.data.Employers),
		WorkDays:  slices.Clone(s.data.WorkDays),
		Contracts: slices.Clone(s.data.Contracts),
		Payments:  slices.Clone(s.data.Payments),
		Settings:  s.data.Settings,
	}, nil
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("record id is required")
	}
	return nil
}

// Settings

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.data == nil {
		return models.Settings{}, errNotLoaded
	}
	return s.data.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	next.Settings = settings
	return s.commit(next)
}

// Employers

func (s *JSONStore) AddEmployer(e models.Employer) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireID(e.ID); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if slices.ContainsFunc(next.Employers, func(x models.Employer) bool { return x.ID == e.ID }) {
		return fmt.Errorf("employer %s already exists", e.ID)
	}
	if err := models.CheckUniqueName(next.Employers, e); err != nil {
		return err
	}

	e.Name = strings.TrimSpace(e.Name)
	stamp(&e.CreatedAt)
	next.Employers = append(next.Employers, e)
	if err := s.commit(next); err != nil {
		return err
	}
	logger.Debug("employer added", "id", e.ID)
	return nil
}

func (s *JSONStore) GetEmployer(id string) (models.Employer, error) {
	if s.data == nil {
		return models.Employer{}, errNotLoaded
	}
	if e, ok := s.data.Employer(id); ok {
		return e, nil
	}
	return models.Employer{}, notFound("employer", id)
}

func (s *JSONStore) GetAllEmployers() ([]models.Employer, error) {
	if s.data == nil {
		return nil, errNotLoaded
	}
	out := slices.Clone(s.data.Employers)
	models.SortEmployers(out)
	return out, nil
}

func (s *JSONStore) UpdateEmployer(e models.Employer) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Employers, func(x models.Employer) bool { return x.ID == e.ID })
	if i < 0 {
		return notFound("employer", e.ID)
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := models.CheckUniqueName(next.Employers, e); err != nil {
		return err
	}

	e.Name = strings.TrimSpace(e.Name)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = next.Employers[i].CreatedAt
	}
	next.Employers[i] = e
	return s.commit(next)
}

func (s *JSONStore) DeleteEmployer(id string) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Employers, func(x models.Employer) bool { return x.ID == id })
	if i < 0 {
		return notFound("employer", id)
	}
	if days, payments := next.References(id); days > 0 || payments > 0 {
		return fmt.Errorf("employer %s has %d work days and %d payments: %w", id, days, payments, models.ErrEmployerInUse)
	}

	next.Employers = slices.Delete(next.Employers, i, i+1)
	next.Contracts = slices.DeleteFunc(next.Contracts, func(c models.ContractWork) bool { return c.EmployerID == id })
	return s.commit(next)
}

func (s *JSONStore) requireEmployer(ds models.Dataset, id string) error {
	if _, ok := ds.Employer(id); !ok {
		return notFound("employer", id)
	}
	return nil
}

// Work days

func (s *JSONStore) AddWorkDay(w models.WorkDay) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireID(w.ID); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, w.EmployerID); err != nil {
		return err
	}
	if slices.ContainsFunc(next.WorkDays, func(x models.WorkDay) bool { return x.ID == w.ID }) {
		return fmt.Errorf("work day %s already exists", w.ID)
	}

	stamp(&w.CreatedAt)
	next.WorkDays = append(next.WorkDays, w)
	return s.commit(next)
}

func (s *JSONStore) GetWorkDay(id string) (models.WorkDay, error) {
	if s.data == nil {
		return models.WorkDay{}, errNotLoaded
	}
	for _, w := range s.data.WorkDays {
		if w.ID == id {
			return w, nil
		}
	}
	return models.WorkDay{}, notFound("work day", id)
}

func (s *JSONStore) GetAllWorkDays() ([]models.WorkDay, error) {
	if s.data == nil {
		return nil, errNotLoaded
	}
	out := slices.Clone(s.data.WorkDays)
	models.SortWorkDays(out)
	return out, nil
}

func (s *JSONStore) UpdateWorkDay(w models.WorkDay) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.WorkDays, func(x models.WorkDay) bool { return x.ID == w.ID })
	if i < 0 {
		return notFound("work day", w.ID)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, w.EmployerID); err != nil {
		return err
	}

	if w.CreatedAt.IsZero() {
		w.CreatedAt = next.WorkDays[i].CreatedAt
	}
	next.WorkDays[i] = w
	return s.commit(next)
}

func (s *JSONStore) DeleteWorkDay(id string) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.WorkDays, func(x models.WorkDay) bool { return x.ID == id })
	if i < 0 {
		return notFound("work day", id)
	}
	next.WorkDays = slices.Delete(next.WorkDays, i, i+1)
	return s.commit(next)
}

// Contracts

func (s *JSONStore) AddContract(c models.ContractWork) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireID(c.ID); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = constants.ContractInProgress
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, c.EmployerID); err != nil {
		return err
	}
	if slices.ContainsFunc(next.Contracts, func(x models.ContractWork) bool { return x.ID == c.ID }) {
		return fmt.Errorf("contract %s already exists", c.ID)
	}

	stamp(&c.CreatedAt)
	next.Contracts = append(next.Contracts, c)
	return s.commit(next)
}

func (s *JSONStore) GetContract(id string) (models.ContractWork, error) {
	if s.data == nil {
		return models.ContractWork{}, errNotLoaded
	}
	for _, c := range s.data.Contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.ContractWork{}, notFound("contract", id)
}

func (s *JSONStore) GetAllContracts() ([]models.ContractWork, error) {
	if s.data == nil {
		return nil, errNotLoaded
	}
	out := slices.Clone(s.data.Contracts)
	models.SortContracts(out)
	return out, nil
}

func (s *JSONStore) UpdateContract(c models.ContractWork) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Contracts, func(x models.ContractWork) bool { return x.ID == c.ID })
	if i < 0 {
		return notFound("contract", c.ID)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, c.EmployerID); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = next.Contracts[i].CreatedAt
	}
	next.Contracts[i] = c
	return s.commit(next)
}

func (s *JSONStore) DeleteContract(id string) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Contracts, func(x models.ContractWork) bool { return x.ID == id })
	if i < 0 {
		return notFound("contract", id)
	}
	next.Contracts = slices.Delete(next.Contracts, i, i+1)
	return s.commit(next)
}

// Payments

func (s *JSONStore) AddPayment(p models.Payment) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := requireID(p.ID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, p.EmployerID); err != nil {
		return err
	}
	if slices.ContainsFunc(next.Payments, func(x models.Payment) bool { return x.ID == p.ID }) {
		return fmt.Errorf("payment %s already exists", p.ID)
	}

	stamp(&p.CreatedAt)
	next.Payments = append(next.Payments, p)
	return s.commit(next)
}

func (s *JSONStore) GetPayment(id string) (models.Payment, error) {
	if s.data == nil {
		return models.Payment{}, errNotLoaded
	}
	for _, p := range s.data.Payments {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Payment{}, notFound("payment", id)
}

func (s *JSONStore) GetAllPayments() ([]models.Payment, error) {
	if s.data == nil {
		return nil, errNotLoaded
	}
	out := slices.Clone(s.data.Payments)
	models.SortPayments(out)
	return out, nil
}

func (s *JSONStore) UpdatePayment(p models.Payment) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Payments, func(x models.Payment) bool { return x.ID == p.ID })
	if i < 0 {
		return notFound("payment", p.ID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.requireEmployer(next, p.EmployerID); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = next.Payments[i].CreatedAt
	}
	next.Payments[i] = p
	return s.commit(next)
}

func (s *JSONStore) DeletePayment(id string) error {
	next, err := s.snapshot()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(next.Payments, func(x models.Payment) bool { return x.ID == id })
	if i < 0 {
		return notFound("payment", id)
	}
	next.Payments = slices.Delete(next.Payments, i, i+1)
	return s.commit(next)
}

func (s *JSONStore) ReplaceAll(ds models.Dataset) error {
	if s.data == nil {
		return errNotLoaded
	}
	ds = models.Dataset{
		Employers: slices.Clone(ds.Employers),
		WorkDays:  slices.Clone(ds.WorkDays),
		Contracts: slices.Clone(ds.Contracts),
		Payments:  slices.Clone(ds.Payments),
		Settings:  ds.Settings,
	}
	transfer.Normalize(&ds)
	if err := s.commit(ds); err != nil {
		return err
	}
	logger.Info("storage replaced", "path", s.path, "employers", len(ds.Employers), "work_days", len(ds.WorkDays))
	return nil
}
