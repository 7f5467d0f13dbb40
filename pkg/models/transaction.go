package models

import "time"

// TransactionListResponse wraps GET /v2/apps/charge-points/{id}/transactions
type TransactionListResponse struct {
	Data *struct {
		Items []Transaction `json:"items"`
	} `json:"data"`
}

// Transaction is a single charging session. A nil EndDate means the
// session is still running.
type Transaction struct {
	ID              string           `json:"id"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         *time.Time       `json:"endDate"`
	ConnectorID     string           `json:"connectorId,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	PowerUsage      *float64         `json:"powerUsage,omitempty"` // Wh
	CarbonOffset    *float64         `json:"carbonOffset,omitempty"`
	ElectricityCost *ElectricityCost `json:"electricityCost,omitempty"`
}

type ElectricityCost struct {
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
	Duration int     `json:"duration,omitempty"`
}

func (t Transaction) Active() bool {
	return t.EndDate == nil
}

func (r *TransactionListResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	for i, tx := range r.Data.Items {
		item := indexed("items", i)
		if tx.ID == "" {
			return missing("data", item, "id")
		}
		if tx.StartDate.IsZero() {
			return missing("data", item, "startDate")
		}
		if tx.EndDate != nil && tx.EndDate.Before(tx.StartDate) {
			return invalid("is before startDate", "data", item, "endDate")
		}
	}
	return nil
}

// StopPayload is the body for the remote-stop-transaction command.
type StopPayload struct {
	ConnectorID string `json:"connectorId"`
}

// CommandResponse is returned by device commands.
type CommandResponse struct {
	Data *struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (r *CommandResponse) Validate() error {
	if r.Data == nil {
		return missing("data")
	}
	if r.Data.Status == "" {
		return missing("data", "status")
	}
	return nil
}
