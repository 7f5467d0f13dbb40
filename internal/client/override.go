package client

import (
	"context"
	"net/http"

	"evnex-cli/pkg/models"
)

// overrideConnector is the connector the override applies to. Evnex home
// chargers have a single connector.
const overrideConnector = 1

// GetChargePointOverride reads the charge-now override. Do not call it for
// an OFFLINE charge point.
func (c *Evnex) GetChargePointOverride(ctx context.Context, chargePointID string) (*models.ChargeOverride, error) {
	const op = "get charge point override"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return nil, err
	}

	var respData models.ChargeOverrideResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v2/apps/charge-points/{id}/override",
		pathParams: map[string]string{"id": chargePointID},
		device:     true,
	}, &respData)
	if err != nil {
		return nil, err
	}
	return respData.Data, nil
}

// SetChargePointOverride turns the charge-now override on or off.
func (c *Evnex) SetChargePointOverride(ctx context.Context, chargePointID string, chargeNow bool) error {
	const op = "set charge point override"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/v2/apps/charge-points/{id}/override",
		pathParams: map[string]string{"id": chargePointID},
		body: models.ChargeOverridePayload{
			ChargeNow:   chargeNow,
			ConnectorID: overrideConnector,
		},
		device: true,
	}, nil)
}
