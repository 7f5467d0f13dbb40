package models

import "time"

// ChargePointDetailResponse wraps GET /v2/apps/charge-points/{id}
type ChargePointDetailResponse struct {
	Data *ChargePointDetail `json:"data"`
}

// ChargePointDetail is the v2 detail shape.
type ChargePointDetail struct {
	ID                       string        `json:"id"`
	Name                     string        `json:"name"`
	Serial                   string        `json:"serial"`
	NetworkStatus            NetworkStatus `json:"networkStatus"`
	NetworkStatusUpdatedDate *time.Time    `json:"networkStatusUpdatedDate,omitempty"`
	OCPPChargePointID        string        `json:"ocppChargePointId,omitempty"`
	TokenRequired            bool          `json:"tokenRequired"`
	MaxCurrent               float64       `json:"maxCurrent,omitempty"`
	Connectors               []Connector   `json:"connectors"`
	Location                 *Location     `json:"location,omitempty"`
	CreatedDate              *time.Time    `json:"createdDate,omitempty"`
	UpdatedDate              *time.Time    `json:"updatedDate,omitempty"`
}

type Connector struct {
	ConnectorID   string     `json:"connectorId"`
	ConnectorType string     `json:"connectorType,omitempty"`
	PowerType     string     `json:"powerType,omitempty"`
	Status        string     `json:"status,omitempty"`
	OCPPStatus    string     `json:"ocppStatus,omitempty"`
	OCPPCode      string     `json:"ocppCode,omitempty"`
	MaxAmperage   float64    `json:"maxAmperage,omitempty"`
	MaxVoltage    float64    `json:"maxVoltage,omitempty"`
	Meter         *Meter     `json:"meter,omitempty"`
	UpdatedDate   *time.Time `json:"updatedDate,omitempty"`
}

type Meter struct {
	Power     float64    `json:"power"`
	Register  float64    `json:"register"`
	Frequency float64    `json:"frequency,omitempty"`
	Updated   *time.Time `json:"updated,omitempty"`
}

type Location struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Address struct {
		Address1 string `json:"address1,omitempty"`
		City     string `json:"city,omitempty"`
		Country  string `json:"country,omitempty"`
	} `json:"address"`
}

func (r *ChargePointDetailResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	d := r.Data
	if d.ID == "" {
		return missing("data", "id")
	}
	if !d.NetworkStatus.IsValid() {
		return invalid("has unknown value "+quote(string(d.NetworkStatus)), "data", "networkStatus")
	}
	for i, c := range d.Connectors {
		if c.ConnectorID == "" {
			return missing("data", indexed("connectors", i), "connectorId")
		}
	}
	return nil
}

// ChargePointDetailV3 is the JSON:API shaped v3 document. It is
// intentionally not merged with the v2 shape.
type ChargePointDetailV3 struct {
	Data *ChargePointResourceV3 `json:"data"`
}

type ChargePointResourceV3 struct {
	ID         string                   `json:"id"`
	Type       string                   `json:"type"`
	Attributes *ChargePointAttributesV3 `json:"attributes"`
}

type ChargePointAttributesV3 struct {
	Name                     string        `json:"name"`
	Serial                   string        `json:"serial"`
	NetworkStatus            NetworkStatus `json:"networkStatus"`
	NetworkStatusUpdatedDate *time.Time    `json:"networkStatusUpdatedDate,omitempty"`
	FirmwareVersion          string        `json:"firmware,omitempty"`
	Model                    string        `json:"model,omitempty"`
	Vendor                   string        `json:"vendor,omitempty"`
	Timezone                 string        `json:"timezone,omitempty"`
	Connectors               []ConnectorV3 `json:"connectors"`
	CreatedDate              *time.Time    `json:"createdDate,omitempty"`
	UpdatedDate              *time.Time    `json:"updatedDate,omitempty"`
}

type ConnectorV3 struct {
	ConnectorID   string  `json:"connectorId"`
	ConnectorType string  `json:"connectorType,omitempty"`
	Status        string  `json:"status,omitempty"`
	OCPPStatus    string  `json:"ocppStatus,omitempty"`
	MaxAmperage   float64 `json:"maxAmperage,omitempty"`
}

// IsOffline reads the nested attributes; a document without attributes
// is treated as reachable.
func (d *ChargePointDetailV3) IsOffline() bool {
	if d == nil || d.Data == nil || d.Data.Attributes == nil {
		return false
	}
	return d.Data.Attributes.NetworkStatus == NetworkStatusOffline
}

func (d *ChargePointDetailV3) Validate() error {
	if d.Data == nil {
		return missing("data")
	}
	if d.Data.ID == "" {
		return missing("data", "id")
	}
	if d.Data.Type == "" {
		return missing("data", "type")
	}
	a := d.Data.Attributes
	if a == nil {
		return missing("data", "attributes")
	}
	if !a.NetworkStatus.IsValid() {
		return invalid("has unknown value "+quote(string(a.NetworkStatus)), "data", "attributes", "networkStatus")
	}
	for i, c := range a.Connectors {
		if c.ConnectorID == "" {
			return missing("data", "attributes", indexed("connectors", i), "connectorId")
		}
	}
	return nil
}
