package dataset_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentapi/internal/dataset"
	"studentapi/internal/model"
)

func sampleStudents() []model.Student {
	return []model.Student{
		{Name: "Alice Johnson", Total: 433},
		{Name: "Bob Smith", Total: 410},
		{Name: "Carl Lee", Total: 200},
	}
}

func TestAbove(t *testing.T) {
	ds, err := dataset.New(sampleStudents())
	require.NoError(t, err)

	tests := []struct {
		name      string
		threshold float64
		want      []model.StudentSummary
	}{
		{
			name:      "example scenario",
			threshold: 400,
			want: []model.StudentSummary{
				{Name: "Alice Johnson", Total: 433},
				{Name: "Bob Smith", Total: 410},
			},
		},
		{
			name:      "equal total is excluded",
			threshold: 410,
			want:      []model.StudentSummary{{Name: "Alice Johnson", Total: 433}},
		},
		{
			name:      "below every total keeps dataset order",
			threshold: -1,
			want: []model.StudentSummary{
				{Name: "Alice Johnson", Total: 433},
				{Name: "Bob Smith", Total: 410},
				{Name: "Carl Lee", Total: 200},
			},
		},
		{
			name:      "above every total",
			threshold: 1000,
			want:      []model.StudentSummary{},
		},
		{
			name:      "fractional threshold",
			threshold: 409.99,
			want: []model.StudentSummary{
				{Name: "Alice Johnson", Total: 433},
				{Name: "Bob Smith", Total: 410},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.Above(tt.threshold)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbove_EmptyDataset(t *testing.T) {
	ds, err := dataset.New(nil)
	require.NoError(t, err)

	got := ds.Above(0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, ds.Len())
}

func TestAbove_SoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	records := make([]model.Student, 200)
	for i := range records {
		records[i] = model.Student{Name: "student", Total: float64(rng.Intn(500))}
	}
	ds, err := dataset.New(records)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		threshold := float64(rng.Intn(520) - 10)
		got := ds.Above(threshold)

		var want []model.StudentSummary
		for _, r := range records {
			if r.Total > threshold {
				want = append(want, model.StudentSummary{Name: r.Name, Total: r.Total})
			}
		}
		assert.Len(t, got, len(want), "threshold %v", threshold)
		for j := range want {
			assert.Equal(t, want[j], got[j])
			assert.Greater(t, got[j].Total, threshold)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		records []model.Student
	}{
		{"missing name", []model.Student{{Total: 10}}},
		{"NaN total", []model.Student{{Name: "A", Total: math.NaN()}}},
		{"infinite total", []model.Student{{Name: "A", Total: math.Inf(1)}}},
		{"negative infinite total", []model.Student{{Name: "A", Total: math.Inf(-1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.New(tt.records)
			assert.ErrorIs(t, err, dataset.ErrMalformed)
		})
	}
}

func TestNew_IsolatedFromCaller(t *testing.T) {
	records := sampleStudents()
	ds, err := dataset.New(records)
	require.NoError(t, err)

	records[0].Total = 0
	assert.Len(t, ds.Above(430), 1)

	copied := ds.Records()
	copied[0].Name = "changed"
	assert.Equal(t, "Alice Johnson", ds.Records()[0].Name)
}
