package models

import (
	"encoding/json"
	"time"
)

// NullableInt represents an int field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=0
// - Field present with null: Set=true, Valid=false, Value=0
// - Field present with value: Set=true, Valid=true, Value=the value
//
// This is needed because Go's standard JSON unmarshaling treats both
// "field absent" and "field: null" as nil for pointer types.
type NullableInt struct {
	Value int
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableInt.
func (ni *NullableInt) UnmarshalJSON(data []byte) error {
	ni.Set = true // Field was present in JSON

	if string(data) == "null" {
		ni.Valid = false
		ni.Value = 0
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	ni.Value = v
	ni.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableInt.
func (ni NullableInt) MarshalJSON() ([]byte, error) {
	if !ni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ni.Value)
}

// ToPtr converts NullableInt to *int for use with existing code.
// Returns nil if Valid is false, otherwise returns pointer to Value.
func (ni NullableInt) ToPtr() *int {
	if !ni.Valid {
		return nil
	}
	return &ni.Value
}

// NullableTime represents a time field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false
// - Field present with null: Set=true, Valid=false
// - Field present with value: Set=true, Valid=true, Value=time
type NullableTime struct {
	Value time.Time
	Valid bool
	Set   bool
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableTime.
func (nt *NullableTime) UnmarshalJSON(data []byte) error {
	nt.Set = true

	if string(data) == "null" {
		nt.Valid = false
		nt.Value = time.Time{}
		return nil
	}

	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	nt.Value = t
	nt.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableTime.
func (nt NullableTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nt.Value)
}

// ToPtr converts NullableTime to *time.Time for use with existing code.
func (nt NullableTime) ToPtr() *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Value
}
