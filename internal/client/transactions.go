package client

import (
	"context"
	"net/http"
	"sort"

	"evnex-cli/pkg/models"
)

// stopConnector is sent with remote stop commands.
const stopConnector = "1"

// GetChargePointTransactions returns the charging sessions of a charge
// point, most recent first. A running session has a nil EndDate.
func (c *Evnex) GetChargePointTransactions(ctx context.Context, chargePointID string) ([]models.Transaction, error) {
	const op = "get charge point transactions"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return nil, err
	}

	var respData models.TransactionListResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v2/apps/charge-points/{id}/transactions",
		pathParams: map[string]string{"id": chargePointID},
		device:     true,
	}, &respData)
	if err != nil {
		return nil, err
	}

	transactions := append(make([]models.Transaction, 0, len(respData.Data.Items)), respData.Data.Items...)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].StartDate.After(transactions[j].StartDate)
	})
	return transactions, nil
}

// StopChargePoint sends a remote stop for the running session. The vehicle
// has to be plugged in again before charging resumes. An OFFLINE charge
// point cannot answer; expect ErrDeviceUnreachable.
func (c *Evnex) StopChargePoint(ctx context.Context, chargePointID string) error {
	const op = "stop charge point"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return err
	}

	var respData models.CommandResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/v2/apps/charge-points/{id}/commands/remote-stop-transaction",
		pathParams: map[string]string{"id": chargePointID},
		body:       models.StopPayload{ConnectorID: stopConnector},
		device:     true,
	}, &respData)
	if err != nil {
		return err
	}

	if respData.Data.Status != "Accepted" {
		return &Error{Op: op, Kind: ErrRequest, Body: "charge point answered " + respData.Data.Status}
	}
	return nil
}
