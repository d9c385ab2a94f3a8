package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date decodes either a calendar date (2006-01-02) or an RFC3339 timestamp.
type Date time.Time

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			*d = Date(t)
			return nil
		}
	}
	return fmt.Errorf("%q is not a date (want %s or RFC3339)", raw, dateLayout)
}

// UnmarshalJSON accepts plain dates for dt_start and dt_end.
func (r *CreateCurriculumGrideRequest) UnmarshalJSON(data []byte) error {
	type plain CreateCurriculumGrideRequest
	aux := struct {
		*plain
		DtStart *Date `json:"dt_start"`
		DtEnd   *Date `json:"dt_end"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DtStart != nil {
		r.DtStart = time.Time(*aux.DtStart)
	}
	if aux.DtEnd != nil {
		r.DtEnd = time.Time(*aux.DtEnd)
	}
	return nil
}

// UnmarshalJSON accepts plain dates for dt_start and dt_end.
func (r *UpdateCurriculumGrideRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateCurriculumGrideRequest
	aux := struct {
		*plain
		DtStart *Date `json:"dt_start"`
		DtEnd   *Date `json:"dt_end"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DtStart != nil {
		start := time.Time(*aux.DtStart)
		r.DtStart = &start
	}
	if aux.DtEnd != nil {
		end := time.Time(*aux.DtEnd)
		r.DtEnd = &end
	}
	return nil
}
