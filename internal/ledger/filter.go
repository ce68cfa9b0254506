package ledger

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

// Filter narrows reports to one employer and/or one kind of work.
// The zero value selects everything.
type Filter struct {
	EmployerID string
	WorkType   constants.WorkType
}

// ParseWorkType validates a work type name. Empty means all.
func ParseWorkType(s string) (constants.WorkType, error) {
	switch wt := constants.WorkType(s); wt {
	case "", constants.WorkTypeAll:
		return constants.WorkTypeAll, nil
	case constants.WorkTypeDaily, constants.WorkTypeContract:
		return wt, nil
	default:
		return "", fmt.Errorf("unknown work type %q (want all, daily or contract)", s)
	}
}

// Daily reports whether daily work is included.
func (f Filter) Daily() bool {
	return f.WorkType == "" || f.WorkType == constants.WorkTypeAll || f.WorkType == constants.WorkTypeDaily
}

// Contract reports whether contract work is included.
func (f Filter) Contract() bool {
	return f.WorkType == "" || f.WorkType == constants.WorkTypeAll || f.WorkType == constants.WorkTypeContract
}

// Matches reports whether a record for employerID passes the employer filter.
func (f Filter) Matches(employerID string) bool {
	return f.EmployerID == "" || f.EmployerID == employerID
}

// Employers returns the employers selected by f, in dataset order.
func (f Filter) Employers(ds models.Dataset) []models.Employer {
	if f.EmployerID == "" {
		return ds.Employers
	}
	var out []models.Employer
	for _, e := range ds.Employers {
		if e.ID == f.EmployerID {
			out = append(out, e)
		}
	}
	return out
}

// WorkDays returns the work days selected by f, ignoring the work type.
func (f Filter) WorkDays(ds models.Dataset) []models.WorkDay {
	var out []models.WorkDay
	for _, w := range ds.WorkDays {
		if f.Matches(w.EmployerID) {
			out = append(out, w)
		}
	}
	return out
}
