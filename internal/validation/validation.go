package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

// Record kinds named in conflicts
const (
	KindEmployer = "employer"
	KindWorkDay  = "work day"
	KindContract = "contract"
	KindPayment  = "payment"
)

// Conflict is one integrity problem found in a dataset.
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Kind        string   // record kind the IDs refer to
	IDs         []string // records involved, for auto-fixing
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns how many conflicts of type t were found.
func (vr *ValidationResult) Count(t constants.ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a dataset for problems the stores cannot rule out on
// their own, such as records imported from a hand-edited file.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDataset runs every check over ds.
func (v *Validator) ValidateDataset(ds models.Dataset) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(c Conflict) { result.Conflicts = append(result.Conflicts, c) }

	v.checkEmployers(ds.Employers, add)

	known := make(map[string]bool, len(ds.Employers))
	for _, e := range ds.Employers {
		known[e.ID] = true
	}

	ids := idCounter{}
	for _, w := range ds.WorkDays {
		ids.add(KindWorkDay, w.ID)
		if !known[w.EmployerID] {
			add(orphan(constants.ConflictOrphanWorkDay, KindWorkDay, w.ID, w.EmployerID))
		}
		checkDate(add, KindWorkDay, w.ID, "date", w.Date)
		checkRecord(add, KindWorkDay, w.ID, w.Validate())
	}
	for _, c := range ds.Contracts {
		ids.add(KindContract, c.ID)
		if !known[c.EmployerID] {
			add(orphan(constants.ConflictOrphanContract, KindContract, c.ID, c.EmployerID))
		}
		checkDate(add, KindContract, c.ID, "startDate", c.StartDate)
		if c.EndDate != nil && *c.EndDate != "" {
			checkDate(add, KindContract, c.ID, "endDate", *c.EndDate)
		}
		checkRecord(add, KindContract, c.ID, c.Validate())
	}
	for _, p := range ds.Payments {
		ids.add(KindPayment, p.ID)
		if !known[p.EmployerID] {
			add(orphan(constants.ConflictOrphanPayment, KindPayment, p.ID, p.EmployerID))
		}
		checkDate(add, KindPayment, p.ID, "date", p.Date)
		checkRecord(add, KindPayment, p.ID, p.Validate())
	}
	for _, c := range ids.duplicates() {
		add(c)
	}

	sort.SliceStable(result.Conflicts, func(i, j int) bool {
		return result.Conflicts[i].Type < result.Conflicts[j].Type
	})
	return result
}

func (v *Validator) checkEmployers(employers []models.Employer, add func(Conflict)) {
	ids := idCounter{}
	byName := make(map[string][]string)
	var names []string
	for _, e := range employers {
		ids.add(KindEmployer, e.ID)
		checkRecord(add, KindEmployer, e.ID, e.Validate())

		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			continue
		}
		if _, seen := byName[key]; !seen {
			names = append(names, key)
		}
		byName[key] = append(byName[key], e.ID)
	}

	for _, key := range names {
		if found := byName[key]; len(found) > 1 {
			add(Conflict{
				Type:        constants.ConflictDuplicateEmployerName,
				Description: fmt.Sprintf("Duplicate employer name: %q (IDs: %v)", key, found),
				Kind:        KindEmployer,
				IDs:         found,
			})
		}
	}
	for _, c := range ids.duplicates() {
		add(c)
	}
}

func orphan(t constants.ConflictType, kind, id, employerID string) Conflict {
	return Conflict{
		Type:        t,
		Description: fmt.Sprintf("%s %s references missing employer %q", capitalize(kind), id, employerID),
		Kind:        kind,
		IDs:         []string{id},
	}
}

func checkDate(add func(Conflict), kind, id, field, value string) {
	if models.ValidDate(value) {
		return
	}
	add(Conflict{
		Type:        constants.ConflictInvalidDate,
		Description: fmt.Sprintf("%s %s has invalid %s: %q", capitalize(kind), id, field, value),
		Kind:        kind,
		IDs:         []string{id},
	})
}

// checkRecord reports field errors other than dates, which checkDate covers.
func checkRecord(add func(Conflict), kind, id string, err error) {
	fields, ok := models.AsValidationErrors(err)
	if !ok {
		return
	}
	var problems []string
	for _, fe := range fields {
		switch fe.Field {
		case "date", "startDate", "endDate", "employerId":
			continue
		}
		problems = append(problems, fe.Field)
	}
	if len(problems) == 0 {
		return
	}
	add(Conflict{
		Type:        constants.ConflictInvalidRecord,
		Description: fmt.Sprintf("%s %s has invalid fields: %s", capitalize(kind), id, strings.Join(problems, ", ")),
		Kind:        kind,
		IDs:         []string{id},
	})
}

type idCounter struct {
	order []string
	seen  map[string]int
	kinds map[string]string
}

func (c *idCounter) add(kind, id string) {
	if c.seen == nil {
		c.seen = make(map[string]int)
		c.kinds = make(map[string]string)
	}
	key := kind + "\x00" + id
	if c.seen[key] == 0 {
		c.order = append(c.order, key)
		c.kinds[key] = kind
	}
	c.seen[key]++
}

func (c *idCounter) duplicates() []Conflict {
	var out []Conflict
	for _, key := range c.order {
		if n := c.seen[key]; n > 1 {
			kind := c.kinds[key]
			id := strings.TrimPrefix(key, kind+"\x00")
			out = append(out, Conflict{
				Type:        constants.ConflictDuplicateID,
				Description: fmt.Sprintf("%s id %q is used by %d records", capitalize(kind), id, n),
				Kind:        kind,
				IDs:         []string{id},
			})
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Deleter removes records by id. Both storage backends satisfy it.
type Deleter interface {
	DeleteWorkDay(id string) error
	DeleteContract(id string) error
	DeletePayment(id string) error
}

// AutoFixOrphans deletes work days, contracts and payments whose employer
// no longer exists. Other conflict types need a human and are left alone.
func AutoFixOrphans(conflicts []Conflict, store Deleter) []FixAction {
	actions := []FixAction{}

	for _, conflict := range conflicts {
		var del func(string) error
		switch conflict.Type {
		case constants.ConflictOrphanWorkDay:
			del = store.DeleteWorkDay
		case constants.ConflictOrphanContract:
			del = store.DeleteContract
		case constants.ConflictOrphanPayment:
			del = store.DeletePayment
		default:
			continue
		}

		var deleted, failed []string
		for _, id := range conflict.IDs {
			if err := del(id); err != nil {
				failed = append(failed, id)
				continue
			}
			deleted = append(deleted, id)
		}

		switch {
		case len(deleted) > 0 && len(failed) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed orphaned %s %v (failed to remove: %v)", conflict.Kind, deleted, failed),
				SourceConflict: conflict,
			})
		case len(deleted) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed orphaned %s %v", conflict.Kind, deleted),
				SourceConflict: conflict,
			})
		case len(failed) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove orphaned %s %v", conflict.Kind, failed),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
