package models

// SolarConfigResponse wraps GET /v2/apps/charge-points/{id}/solar
type SolarConfigResponse struct {
	Data *SolarConfig `json:"data"`
}

type SolarConfig struct {
	Enabled              *bool    `json:"enabled"`
	Mode                 string   `json:"mode,omitempty"`
	MinimumCurrent       *float64 `json:"minimumCurrent,omitempty"`
	MaximumCurrent       *float64 `json:"maximumCurrent,omitempty"`
	PowerSensorInstalled bool     `json:"powerSensorInstalled"`
}

func (r *SolarConfigResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	if r.Data.Enabled == nil {
		return missing("data", "enabled")
	}
	s := r.Data
	if s.MinimumCurrent != nil && s.MaximumCurrent != nil && *s.MinimumCurrent > *s.MaximumCurrent {
		return invalid("exceeds maximumCurrent", "data", "minimumCurrent")
	}
	return nil
}
