package client

import (
	"context"
	"net/http"

	"evnex-cli/pkg/models"
)

// GetOrgChargePoints lists the charge points registered to an organisation.
// An organisation without devices yields an empty slice.
func (c *Evnex) GetOrgChargePoints(ctx context.Context, orgID string) ([]models.ChargePoint, error) {
	const op = "get org charge points"
	if err := requireID(op, "organisation id", orgID); err != nil {
		return nil, err
	}

	var respData models.ChargePointListResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v2/apps/organisations/{orgId}/charge-points",
		pathParams: map[string]string{"orgId": orgID},
	}, &respData)
	if err != nil {
		return nil, err
	}

	chargePoints := make([]models.ChargePoint, 0, len(respData.Data.Items))
	for _, cp := range respData.Data.Items {
		cp.OrgID = orgID
		chargePoints = append(chargePoints, cp)
	}
	return chargePoints, nil
}

// GetChargePointDetail returns the v2 detail document.
func (c *Evnex) GetChargePointDetail(ctx context.Context, chargePointID string) (*models.ChargePointDetail, error) {
	const op = "get charge point detail"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return nil, err
	}

	var respData models.ChargePointDetailResponse
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v2/apps/charge-points/{id}",
		pathParams: map[string]string{"id": chargePointID},
		device:     true,
	}, &respData)
	if err != nil {
		return nil, err
	}
	return respData.Data, nil
}

// GetChargePointDetailV3 returns the v3 (JSON:API) detail document.
func (c *Evnex) GetChargePointDetailV3(ctx context.Context, chargePointID string) (*models.ChargePointDetailV3, error) {
	const op = "get charge point detail v3"
	if err := requireID(op, "charge point id", chargePointID); err != nil {
		return nil, err
	}

	var respData models.ChargePointDetailV3
	err := c.do(ctx, request{
		op:         op,
		method:     http.MethodGet,
		path:       "/v3/charge-points/{id}",
		pathParams: map[string]string{"id": chargePointID},
		device:     true,
	}, &respData)
	if err != nil {
		return nil, err
	}
	return &respData, nil
}
