// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SeedProduct 是启动时预置到库存账本里的商品。
type SeedProduct struct {
	ProductID string `yaml:"product_id"`
	Quantity  int    `yaml:"quantity"`
}

// Config 汇总了所有服务共享的配置。
// 配置来源：CONFIG_PATH 指向的 YAML 文件，个别字段可被环境变量覆盖。
type Config struct {
	App struct {
		ProcessingTimeoutMs int     `yaml:"processing_timeout_ms"`
		DownstreamTimeoutMs int     `yaml:"downstream_timeout_ms"`
		UnitPrice           float64 `yaml:"unit_price"`
		Currency            string  `yaml:"currency"`
		PaymentDeclineOver  float64 `yaml:"payment_decline_over"`
	} `yaml:"app"`

	Infra struct {
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Kafka struct {
			Brokers []string `yaml:"brokers"`
			Topic   string   `yaml:"topic"`
		} `yaml:"kafka"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
	} `yaml:"infra"`

	Services struct {
		InventoryURL string `yaml:"inventory_url"`
		OrderURL     string `yaml:"order_url"`
		PaymentURL   string `yaml:"payment_url"`
	} `yaml:"services"`

	Seed []SeedProduct `yaml:"seed"`
}

var (
	currentConfig Config
	configOnce    sync.Once
)

// Init 加载配置，进程内只执行一次。
func Init() {
	configOnce.Do(loadConfig)
}

// GetCurrentConfig 返回已加载的配置。
func GetCurrentConfig() *Config {
	return &currentConfig
}

func loadConfig() {
	// 默认值与本地 docker-compose 环境对齐
	currentConfig.App.ProcessingTimeoutMs = 5000
	currentConfig.App.DownstreamTimeoutMs = 2000
	currentConfig.App.UnitPrice = 100.0
	currentConfig.App.Currency = "USD"
	currentConfig.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	currentConfig.Infra.Kafka.Topic = "inventory-events"
	currentConfig.Services.InventoryURL = "http://localhost:8081"
	currentConfig.Services.OrderURL = "http://localhost:8082"
	currentConfig.Services.PaymentURL = "http://localhost:8083"

	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("FATAL: failed to read config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, &currentConfig); err != nil {
			log.Fatalf("FATAL: failed to parse config file %s: %v", path, err)
		}
	}

	// 环境变量覆盖，部署时最常改的就是这几项
	if v := os.Getenv("JAEGER_ENDPOINT"); v != "" {
		currentConfig.Infra.Jaeger.Endpoint = v
	}
	if v := os.Getenv("INVENTORY_SERVICE_URL"); v != "" {
		currentConfig.Services.InventoryURL = v
	}
	if v := os.Getenv("ORDER_SERVICE_URL"); v != "" {
		currentConfig.Services.OrderURL = v
	}
	if v := os.Getenv("PAYMENT_SERVICE_URL"); v != "" {
		currentConfig.Services.PaymentURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		currentConfig.Infra.Redis.Addr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		currentConfig.Infra.Mysql.DSN = v
	}
}
