package client

import (
	"context"
	"net/http"

	"evnex-cli/pkg/models"
)

// GetUserDetail fetches the logged in user with the organisations they
// belong to.
func (c *Evnex) GetUserDetail(ctx context.Context) (*models.User, error) {
	var respData models.UserResponse

	err := c.do(ctx, request{
		op:     "get user detail",
		method: http.MethodGet,
		path:   "/v2/apps/user",
	}, &respData)
	if err != nil {
		return nil, err
	}

	return respData.Data, nil
}
