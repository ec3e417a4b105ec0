// internal/service/checkout/infrastructure/adapter/order_http_adapter.go
package adapter

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"commerce/internal/pkg/httpclient"
	"commerce/internal/service/checkout/domain"
)

// OrderHTTPAdapter 通过 HTTP 调用订单服务。
type OrderHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewOrderHTTPAdapter(client *httpclient.Client, baseURL string) *OrderHTTPAdapter {
	return &OrderHTTPAdapter{client: client, baseURL: baseURL}
}

type createOrderRequest struct {
	CustomerID  string        `json:"customerId"`
	Items       []domain.Item `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	Status      string        `json:"status"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

func (a *OrderHTTPAdapter) Create(ctx context.Context, customerID string, items []domain.Item, totalAmount float64) (string, error) {
	body := createOrderRequest{
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      "PENDING",
	}
	var resp createOrderResponse
	if err := a.client.PostJSON(ctx, a.baseURL+"/api/v1/orders", body, &resp); err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", errors.New("order service returned empty order id")
	}
	return resp.OrderID, nil
}

func (a *OrderHTTPAdapter) Cancel(ctx context.Context, orderID string) error {
	return a.client.Delete(ctx, fmt.Sprintf("%s/api/v1/orders/%s", a.baseURL, orderID))
}
