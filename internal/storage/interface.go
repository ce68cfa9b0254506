package storage

import "github.com/julianstephens/mozd/internal/models"

// Provider is a local store for the four record collections and settings.
// Lookups of unknown ids return errors wrapping models.ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Employers, oldest first. DeleteEmployer fails with models.ErrEmployerInUse
	// while work days or payments reference the employer and removes the
	// employer's contracts with it.
	AddEmployer(models.Employer) error
	GetEmployer(id string) (models.Employer, error)
	GetAllEmployers() ([]models.Employer, error)
	UpdateEmployer(models.Employer) error
	DeleteEmployer(id string) error

	// Work days, newest first
	AddWorkDay(models.WorkDay) error
	GetWorkDay(id string) (models.WorkDay, error)
	GetAllWorkDays() ([]models.WorkDay, error)
	UpdateWorkDay(models.WorkDay) error
	DeleteWorkDay(id string) error

	// Contracts, newest start date first
	AddContract(models.ContractWork) error
	GetContract(id string) (models.ContractWork, error)
	GetAllContracts() ([]models.ContractWork, error)
	UpdateContract(models.ContractWork) error
	DeleteContract(id string) error

	// Payments, newest first
	AddPayment(models.Payment) error
	GetPayment(id string) (models.Payment, error)
	GetAllPayments() ([]models.Payment, error)
	UpdatePayment(models.Payment) error
	DeletePayment(id string) error

	// ReplaceAll swaps every record and the settings for ds in one step.
	ReplaceAll(ds models.Dataset) error

	// Utils
	GetConfigPath() string
}
