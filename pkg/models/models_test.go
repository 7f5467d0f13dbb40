package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChargePointListValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "accepts empty organisation",
			body: `{"data":{"items":[]}}`,
		},
		{
			name: "accepts known statuses",
			body: `{"data":{"items":[{"id":"a","networkStatus":"ONLINE"},{"id":"b","networkStatus":"OFFLINE"},{"id":"c","networkStatus":"UNKNOWN"}]}}`,
		},
		{
			name:    "rejects missing envelope",
			body:    `{}`,
			wantErr: "data",
		},
		{
			name:    "rejects unknown status",
			body:    `{"data":{"items":[{"id":"a","networkStatus":"SLEEPING"}]}}`,
			wantErr: "data.items[0].networkStatus",
		},
		{
			name:    "rejects missing id",
			body:    `{"data":{"items":[{"id":"a","networkStatus":"ONLINE"},{"networkStatus":"ONLINE"}]}}`,
			wantErr: "data.items[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ChargePointListResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			err := resp.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected FieldError, got %v", err)
			}
			if fe.Field != tt.wantErr {
				t.Errorf("Expected field %s, got %s", tt.wantErr, fe.Field)
			}
		})
	}
}

func TestDetailShapesValidateIndependently(t *testing.T) {
	v2 := `{"data":{"id":"cp1","name":"Garage","serial":"S1","networkStatus":"ONLINE","connectors":[{"connectorId":"1"}]}}`
	v3 := `{"data":{"id":"cp1","type":"ChargePoint","attributes":{"name":"Garage","networkStatus":"OFFLINE","connectors":[]}}}`

	var d2 ChargePointDetailResponse
	if err := json.Unmarshal([]byte(v2), &d2); err != nil {
		t.Fatalf("Unmarshal v2 failed: %v", err)
	}
	if err := d2.Validate(); err != nil {
		t.Errorf("v2 should validate, got %v", err)
	}

	var d3 ChargePointDetailV3
	if err := json.Unmarshal([]byte(v3), &d3); err != nil {
		t.Fatalf("Unmarshal v3 failed: %v", err)
	}
	if err := d3.Validate(); err != nil {
		t.Errorf("v3 should validate, got %v", err)
	}
	if !d3.IsOffline() {
		t.Error("v3 document should report offline")
	}

	// The v3 body is not a valid v2 body and vice versa.
	var wrong2 ChargePointDetailResponse
	_ = json.Unmarshal([]byte(v3), &wrong2)
	if err := wrong2.Validate(); err == nil {
		t.Error("v3 body should not validate as v2")
	}
	var wrong3 ChargePointDetailV3
	_ = json.Unmarshal([]byte(v2), &wrong3)
	if err := wrong3.Validate(); err == nil {
		t.Error("v2 body should not validate as v3")
	}
}

func TestOverrideRequiresChargeNow(t *testing.T) {
	var resp ChargeOverrideResponse
	if err := json.Unmarshal([]byte(`{"data":{"connectorId":1}}`), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := resp.Validate(); err == nil {
		t.Error("Expected error for missing chargeNow")
	}

	if err := json.Unmarshal([]byte(`{"data":{"chargeNow":false}}`), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := resp.Validate(); err != nil {
		t.Fatalf("Expected valid override, got %v", err)
	}
	if resp.Data.Enabled() {
		t.Error("chargeNow false should not be enabled")
	}
}

func TestSolarConfigRejectsInvertedCurrentRange(t *testing.T) {
	var resp SolarConfigResponse
	body := `{"data":{"enabled":true,"minimumCurrent":16,"maximumCurrent":6}}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := resp.Validate(); err == nil {
		t.Error("Expected error for minimumCurrent above maximumCurrent")
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		active  bool
	}{
		{
			name:   "active session has null end date",
			body:   `{"data":{"items":[{"id":"t1","startDate":"2024-05-01T10:00:00Z","endDate":null}]}}`,
			active: true,
		},
		{
			name: "finished session",
			body: `{"data":{"items":[{"id":"t1","startDate":"2024-05-01T10:00:00Z","endDate":"2024-05-01T12:00:00Z","powerUsage":7400}]}}`,
		},
		{
			name:    "missing start date",
			body:    `{"data":{"items":[{"id":"t1"}]}}`,
			wantErr: true,
		},
		{
			name:    "end before start",
			body:    `{"data":{"items":[{"id":"t1","startDate":"2024-05-01T10:00:00Z","endDate":"2024-05-01T09:00:00Z"}]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp TransactionListResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			err := resp.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && resp.Data.Items[0].Active() != tt.active {
				t.Errorf("Expected active=%v", tt.active)
			}
		})
	}
}
