package models

import "time"

// ChargeOverrideResponse wraps GET /v2/apps/charge-points/{id}/override
type ChargeOverrideResponse struct {
	Data *ChargeOverride `json:"data"`
}

type ChargeOverride struct {
	ChargeNow   *bool      `json:"chargeNow"`
	ConnectorID int        `json:"connectorId,omitempty"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
}

// Enabled is safe to call on a validated override.
func (o ChargeOverride) Enabled() bool {
	return o.ChargeNow != nil && *o.ChargeNow
}

func (r *ChargeOverrideResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	if r.Data.ChargeNow == nil {
		return missing("data", "chargeNow")
	}
	return nil
}

// ChargeOverridePayload is the body for POST /v2/apps/charge-points/{id}/override
type ChargeOverridePayload struct {
	ChargeNow   bool `json:"chargeNow"`
	ConnectorID int  `json:"connectorId"`
}
