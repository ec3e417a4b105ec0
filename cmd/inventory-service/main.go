// cmd/inventory-service/main.go
package main

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"commerce/internal/pkg/bootstrap"
	"commerce/internal/pkg/mq"
	"commerce/internal/service/inventory/application"
	"commerce/internal/service/inventory/domain"
	"commerce/internal/service/inventory/infrastructure"
	"commerce/internal/service/inventory/interfaces"
)

const serviceName = "inventory-service"

// main 是 inventory 服务的组装根。
// 账本存储与事件发布都按配置可插拔：MySQL 或内存、Kafka 或空实现。
func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	var store domain.StockStore
	if cfg.Infra.Mysql.DSN != "" {
		gormStore, err := infrastructure.OpenGormStockStore(cfg.Infra.Mysql.DSN)
		if err != nil {
			log.Fatalf("failed to open stock store: %v", err)
		}
		store = gormStore
	} else {
		log.Println("MYSQL_DSN not set, using in-memory stock store")
		store = infrastructure.NewMemoryStockStore()
	}

	var publisher domain.EventPublisher
	var kafkaPublisher *infrastructure.KafkaEventPublisher
	if len(cfg.Infra.Kafka.Brokers) > 0 {
		writer := mq.NewWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.Topic)
		kafkaPublisher = infrastructure.NewKafkaEventPublisher(writer)
		publisher = kafkaPublisher
	} else {
		log.Println("KAFKA brokers not configured, stock events will not be published")
		publisher = infrastructure.NopEventPublisher{}
	}

	tracer := otel.Tracer(serviceName)
	service := application.NewInventoryService(store, publisher, tracer)

	// 预置商品：已存在的记录保持原样，只补缺失的
	seed(service, cfg.Seed)

	handler := interfaces.NewInventoryHandler(service)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        8081,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
			appCtx.Mux.Handle("/metrics", promhttp.Handler())
		},
		OnShutdown: func(ctx context.Context) {
			if kafkaPublisher != nil {
				kafkaPublisher.Close()
			}
		},
	})
}

func seed(service *application.InventoryService, products []bootstrap.SeedProduct) {
	ctx := context.Background()
	for _, p := range products {
		if _, err := service.Get(ctx, p.ProductID); err == nil {
			continue
		}
		if _, err := service.CreateProduct(ctx, p.ProductID, p.Quantity); err != nil {
			log.Printf("WARN: could not seed product %s: %v", p.ProductID, err)
			continue
		}
		log.Printf("seeded product %s with quantity %d", p.ProductID, p.Quantity)
	}
}
