// Package dataset holds the immutable collection of student records and
// the loaders that build it from files, SQL databases and Redis.
package dataset

import (
	"errors"
	"fmt"
	"math"

	"studentapi/internal/model"
)

var (
	// ErrMalformed marks a source whose content cannot be turned into records.
	ErrMalformed = errors.New("malformed dataset")
)

// Dataset is a read-only, ordered collection of students. It is safe for
// concurrent use because nothing mutates it after New returns.
type Dataset struct {
	students []model.Student
}

// New copies records into a Dataset, keeping their order. Every record
// must have a name and a finite total.
func New(records []model.Student) (*Dataset, error) {
	students := make([]model.Student, len(records))
	for i, r := range records {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		students[i] = r
	}
	return &Dataset{students: students}, nil
}

func validate(s model.Student) error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrMalformed)
	}
	if math.IsNaN(s.Total) || math.IsInf(s.Total, 0) {
		return fmt.Errorf("%w: total of %q is not finite", ErrMalformed, s.Name)
	}
	return nil
}

// Above returns every student whose total is strictly greater than
// threshold, in dataset order. The result is never nil.
func (d *Dataset) Above(threshold float64) []model.StudentSummary {
	out := make([]model.StudentSummary, 0)
	for _, s := range d.students {
		if s.Total > threshold {
			out = append(out, model.StudentSummary{Name: s.Name, Total: s.Total})
		}
	}
	return out
}

func (d *Dataset) Len() int {
	return len(d.students)
}

// Records returns a copy of the underlying records.
func (d *Dataset) Records() []model.Student {
	out := make([]model.Student, len(d.students))
	copy(out, d.students)
	return out
}
