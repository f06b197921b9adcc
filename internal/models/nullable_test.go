package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue int
	}{
		{
			name:      "field present with int value",
			json:      `{"hours": 48}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 48,
		},
		{
			name:      "field present with null value",
			json:      `{"hours": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field present with zero",
			json:      `{"hours": 0}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Hours NullableInt `json:"hours"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Hours.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Hours.Set, tt.wantSet)
			}
			if result.Hours.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Hours.Valid, tt.wantValid)
			}
			if result.Hours.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", result.Hours.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableInt_ToPtr(t *testing.T) {
	tests := []struct {
		name    string
		ni      NullableInt
		wantNil bool
		wantVal int
	}{
		{
			name:    "valid value",
			ni:      NullableInt{Value: 24, Valid: true, Set: true},
			wantNil: false,
			wantVal: 24,
		},
		{
			name:    "null value",
			ni:      NullableInt{Valid: false, Set: true},
			wantNil: true,
		},
		{
			name:    "not set",
			ni:      NullableInt{Valid: false, Set: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := tt.ni.ToPtr()
			if tt.wantNil {
				if ptr != nil {
					t.Errorf("ToPtr() = %v, want nil", *ptr)
				}
			} else {
				if ptr == nil {
					t.Errorf("ToPtr() = nil, want %d", tt.wantVal)
				} else if *ptr != tt.wantVal {
					t.Errorf("ToPtr() = %d, want %d", *ptr, tt.wantVal)
				}
			}
		})
	}
}

func TestNullableTime_UnmarshalJSON(t *testing.T) {
	testTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	testTimeJSON := `"2024-01-15T10:30:00Z"`

	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantTime  time.Time
	}{
		{
			name:      "field present with time value",
			json:      `{"until": ` + testTimeJSON + `}`,
			wantSet:   true,
			wantValid: true,
			wantTime:  testTime,
		},
		{
			name:      "field present with null value",
			json:      `{"until": null}`,
			wantSet:   true,
			wantValid: false,
			wantTime:  time.Time{},
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantTime:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Until NullableTime `json:"until"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Until.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Until.Set, tt.wantSet)
			}
			if result.Until.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Until.Valid, tt.wantValid)
			}
			if !result.Until.Value.Equal(tt.wantTime) {
				t.Errorf("Value = %v, want %v", result.Until.Value, tt.wantTime)
			}
		})
	}
}

func TestSnoozeInsightRequest_WithNullableFields(t *testing.T) {
	// Explicit null hours clears an existing snooze
	json1 := `{"hours": null}`
	var req1 SnoozeInsightRequest
	if err := json.Unmarshal([]byte(json1), &req1); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !req1.Hours.Set {
		t.Error("Expected Hours.Set to be true when field is present with null")
	}
	if req1.Hours.Valid {
		t.Error("Expected Hours.Valid to be false when value is null")
	}

	// Absent field means "use the configured default"
	json2 := `{}`
	var req2 SnoozeInsightRequest
	if err := json.Unmarshal([]byte(json2), &req2); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if req2.Hours.Set {
		t.Error("Expected Hours.Set to be false when field is absent")
	}

	// Until takes precedence and carries a concrete timestamp
	json3 := `{"hours": 12, "until": "2024-01-20T08:00:00Z"}`
	var req3 SnoozeInsightRequest
	if err := json.Unmarshal([]byte(json3), &req3); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !req3.Hours.Valid || req3.Hours.Value != 12 {
		t.Errorf("Expected Hours to be 12, got %+v", req3.Hours)
	}
	if !req3.Until.Valid {
		t.Error("Expected Until.Valid to be true when field has value")
	}
}
