// cmd/order-service/main.go
package main

import (
	"commerce/internal/pkg/bootstrap"
	"commerce/internal/service/order/application"
	"commerce/internal/service/order/interfaces"
)

const serviceName = "order-service"

func main() {
	bootstrap.Init()

	service := application.NewOrderService()
	handler := interfaces.NewOrderHandler(service)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8082,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
	})
}
