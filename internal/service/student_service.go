package service

import (
	"errors"
	"math"

	"studentapi/internal/dataset"
	"studentapi/internal/model"
)

// InvalidThresholdMessage is the client-facing text for ErrInvalidThreshold.
const InvalidThresholdMessage = "Invalid threshold. Please provide a valid number."

// ErrInvalidThreshold is returned when the threshold is missing or is not
// a finite number.
var ErrInvalidThreshold = errors.New("invalid threshold")

type StudentService struct {
	dataset *dataset.Dataset
}

func NewStudentService(ds *dataset.Dataset) *StudentService {
	return &StudentService{dataset: ds}
}

// AboveThreshold returns the students whose total is strictly greater than
// threshold, in dataset order.
func (s *StudentService) AboveThreshold(threshold *float64) (*model.ThresholdResponse, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	students := s.dataset.Above(*threshold)
	return &model.ThresholdResponse{
		Count:    len(students),
		Students: students,
	}, nil
}

// Size is the number of records in the dataset.
func (s *StudentService) Size() int {
	return s.dataset.Len()
}

func ValidateThreshold(threshold *float64) error {
	if threshold == nil || math.IsNaN(*threshold) || math.IsInf(*threshold, 0) {
		return ErrInvalidThreshold
	}
	return nil
}
