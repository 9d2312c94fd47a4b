package model

import "encoding/json"

// Student is one record of the dataset. Only Name and Total are exposed
// over the API; ID exists for the SQL and Redis stores.
type Student struct {
	ID    uint    `gorm:"primaryKey" json:"-"`
	Name  string  `gorm:"not null" json:"name"`
	Total float64 `gorm:"not null" json:"total"`
}

// StudentSummary is the projection returned to API callers.
type StudentSummary struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// ThresholdRequest is the body of POST /students/above-threshold.
// Threshold is a pointer so a missing or null value can be told apart from 0.
type ThresholdRequest struct {
	Threshold *float64 `json:"threshold"`
}

// UnmarshalJSON only accepts the exact key "threshold". encoding/json
// would otherwise also fill Threshold from "Threshold" or "THRESHOLD".
func (r *ThresholdRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.Threshold = nil
	raw, ok := fields["threshold"]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, &r.Threshold)
}

type ThresholdResponse struct {
	Count    int              `json:"count"`
	Students []StudentSummary `json:"students"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
