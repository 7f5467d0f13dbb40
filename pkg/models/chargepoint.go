package models

import (
	"encoding/json"
	"time"
)

// NetworkStatus is the backend's view of a charge point's connectivity.
type NetworkStatus string

const (
	NetworkStatusOnline  NetworkStatus = "ONLINE"
	NetworkStatusOffline NetworkStatus = "OFFLINE"
	NetworkStatusUnknown NetworkStatus = "UNKNOWN"
)

func (s NetworkStatus) IsValid() bool {
	switch s {
	case NetworkStatusOnline, NetworkStatusOffline, NetworkStatusUnknown:
		return true
	}
	return false
}

// ChargePointListResponse wraps GET /v2/apps/organisations/{id}/charge-points
type ChargePointListResponse struct {
	Data *struct {
		Items []ChargePoint `json:"items"`
	} `json:"data"`
}

// ChargePoint is the summary returned when listing an organisation's devices.
type ChargePoint struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Serial        string              `json:"serial"`
	NetworkStatus NetworkStatus       `json:"networkStatus"`
	LastHeard     *time.Time          `json:"lastHeard,omitempty"`
	Details       *ChargePointDetails `json:"details,omitempty"`
	MaxCurrent    float64             `json:"maxCurrent,omitempty"`

	// OrgID is not part of the payload; the client fills it with the
	// organisation the charge point was listed under.
	OrgID string `json:"orgId,omitempty"`
}

type ChargePointDetails struct {
	Model    string `json:"model"`
	Vendor   string `json:"vendor"`
	Firmware string `json:"firmware"`
}

// IsOffline reports whether device-level calls should be skipped.
func (cp ChargePoint) IsOffline() bool {
	return cp.NetworkStatus == NetworkStatusOffline
}

func (r *ChargePointListResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	for i := range r.Data.Items {
		if err := validateChargePoint(&r.Data.Items[i], "data", indexed("items", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateChargePoint(cp *ChargePoint, path ...string) error {
	if cp.ID == "" {
		return missing(append(path, "id")...)
	}
	if !cp.NetworkStatus.IsValid() {
		return invalid("has unknown value "+quote(string(cp.NetworkStatus)), append(path, "networkStatus")...)
	}
	return nil
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
