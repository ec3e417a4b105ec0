// internal/service/checkout/infrastructure/adapter/inventory_http_adapter.go
package adapter

import (
	"context"
	"fmt"

	"commerce/internal/pkg/httpclient"
)

// InventoryHTTPAdapter 通过 HTTP 调用库存服务。
type InventoryHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewInventoryHTTPAdapter(client *httpclient.Client, baseURL string) *InventoryHTTPAdapter {
	return &InventoryHTTPAdapter{client: client, baseURL: baseURL}
}

type stockMutationRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	OrderID   string `json:"orderId"`
}

func (a *InventoryHTTPAdapter) Reserve(ctx context.Context, productID string, qty int, orderID string) error {
	return a.post(ctx, "reserve", productID, qty, orderID)
}

func (a *InventoryHTTPAdapter) Release(ctx context.Context, productID string, qty int, orderID string) error {
	return a.post(ctx, "release", productID, qty, orderID)
}

func (a *InventoryHTTPAdapter) Confirm(ctx context.Context, productID string, qty int, orderID string) error {
	return a.post(ctx, "confirm", productID, qty, orderID)
}

func (a *InventoryHTTPAdapter) post(ctx context.Context, action, productID string, qty int, orderID string) error {
	url := fmt.Sprintf("%s/api/v1/inventory/%s", a.baseURL, action)
	body := stockMutationRequest{ProductID: productID, Quantity: qty, OrderID: orderID}
	return a.client.PostJSON(ctx, url, body, nil)
}
