package models

// Dataset is every record in a store, loaded together for reporting.
type Dataset struct {
	Employers []Employer
	WorkDays  []WorkDay
	Contracts []ContractWork
	Payments  []Payment
	Settings  Settings
}

// EmployerIndex maps employer ids to employers.
func (d Dataset) EmployerIndex() map[string]Employer {
	idx := make(map[string]Employer, len(d.Employers))
	for _, e := range d.Employers {
		idx[e.ID] = e
	}
	return idx
}

// Employer looks up an employer by id.
func (d Dataset) Employer(id string) (Employer, bool) {
	for _, e := range d.Employers {
		if e.ID == id {
			return e, true
		}
	}
	return Employer{}, false
}

// References counts the work days and payments that point at an employer.
// Contracts are not counted; they do not block deletion.
func (d Dataset) References(employerID string) (workDays, payments int) {
	for _, w := range d.WorkDays {
		if w.EmployerID == employerID {
			workDays++
		}
	}
	for _, p := range d.Payments {
		if p.EmployerID == employerID {
			payments++
		}
	}
	return workDays, payments
}
