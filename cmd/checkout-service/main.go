// cmd/checkout-service/main.go
package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"commerce/internal/pkg/bootstrap"
	"commerce/internal/pkg/httpclient"
	"commerce/internal/service/checkout/application"
	"commerce/internal/service/checkout/domain"
	"commerce/internal/service/checkout/domain/port"
	"commerce/internal/service/checkout/infrastructure"
	"commerce/internal/service/checkout/infrastructure/adapter"
	"commerce/internal/service/checkout/interfaces"
)

const serviceName = "checkout-service"

// main 是 checkout 服务的组装根：创建并组装所有依赖，然后启动。
func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	tracer := otel.Tracer(serviceName)
	httpClient := httpclient.NewClient(tracer, time.Duration(cfg.App.DownstreamTimeoutMs)*time.Millisecond)

	inventory := adapter.NewInventoryHTTPAdapter(httpClient, cfg.Services.InventoryURL)
	orders := adapter.NewOrderHTTPAdapter(httpClient, cfg.Services.OrderURL)
	payments := adapter.NewPaymentHTTPAdapter(httpClient, cfg.Services.PaymentURL)

	statusStore := infrastructure.NewMemoryStatusStore()

	// Redis 可用时幂等键跨实例生效，否则退化为进程内去重
	var idempotency domain.IdempotencyStore
	var redisStore *infrastructure.RedisIdempotencyStore
	if cfg.Infra.Redis.Addr != "" {
		redisStore = infrastructure.NewRedisIdempotencyStore(cfg.Infra.Redis.Addr)
		idempotency = redisStore
	} else {
		idempotency = infrastructure.NewMemoryIdempotencyStore()
	}

	checkoutService := application.NewCheckoutApplicationService(
		inventory,
		orders,
		payments,
		statusStore,
		idempotency,
		port.FlatPriceCalculator(cfg.App.UnitPrice),
		cfg.App.Currency,
		time.Duration(cfg.App.ProcessingTimeoutMs)*time.Millisecond,
	)

	checkoutHandler := interfaces.NewCheckoutHandler(checkoutService)
	streamHandler := interfaces.NewStatusStreamHandler(checkoutService)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8080,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			checkoutHandler.RegisterRoutes(appCtx.Mux)
			streamHandler.RegisterRoutes(appCtx.Mux)
			appCtx.Mux.Handle("/metrics", promhttp.Handler())
		},
		OnShutdown: func(ctx context.Context) {
			if redisStore != nil {
				redisStore.Close()
			}
		},
	})
}
