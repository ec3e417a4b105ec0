// cmd/payment-service/main.go
package main

import (
	"commerce/internal/pkg/bootstrap"
	"commerce/internal/service/payment/application"
	"commerce/internal/service/payment/interfaces"
)

const serviceName = "payment-service"

func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	service := application.NewPaymentService(cfg.App.PaymentDeclineOver)
	handler := interfaces.NewPaymentHandler(service)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8083,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
	})
}
