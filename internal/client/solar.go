package client

import (
	"context"
	"net/http"

	"evnex-cli/pkg/models"
)

func (c *Evnex) GetChargePointSolarConfig(ctx context.Context, chargePointID string) (*models.SolarConfig, error) {
	const op = "get charge point solar config"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return nil, err
	}

	var respData models.SolarConfigResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v2/apps/charge-points/{id}/solar",
		pathParams: map[string]string{"id": chargePointID},
		device:     true,
	}, &respData)
	if err != nil {
		return nil, err
	}
	return respData.Data, nil
}
