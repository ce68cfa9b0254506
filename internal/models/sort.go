package models

import "sort"

// SortEmployers orders employers by creation time, oldest first.
func SortEmployers(employers []Employer) {
	sort.SliceStable(employers, func(i, j int) bool {
		return employers[i].CreatedAt.Before(employers[j].CreatedAt)
	})
}

// SortWorkDays orders work days by date, newest first. Ties go to the most
// recently created.
func SortWorkDays(days []WorkDay) {
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].Date != days[j].Date {
			return days[i].Date > days[j].Date
		}
		return days[i].CreatedAt.After(days[j].CreatedAt)
	})
}

// SortContracts orders contracts by start date, newest first.
func SortContracts(contracts []ContractWork) {
	sort.SliceStable(contracts, func(i, j int) bool {
		if contracts[i].StartDate != contracts[j].StartDate {
			return contracts[i].StartDate > contracts[j].StartDate
		}
		return contracts[i].CreatedAt.After(contracts[j].CreatedAt)
	})
}

// SortPayments orders payments by date, newest first.
func SortPayments(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Date != payments[j].Date {
			return payments[i].Date > payments[j].Date
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}
