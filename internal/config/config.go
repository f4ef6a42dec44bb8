package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr            string
	ReleaseMode         bool
	LogFile             string
	LogLevel            string
	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitRoutingKey    string
	RabbitConsumerTag   string
	RabbitPublishPrefix string
	RabbitPublishBuffer int
	RabbitDialTimeout   time.Duration
	EventsHeartbeat     time.Duration
	OTELServiceName     string
	OTLPEndpoint        string
	OTLPInsecure        bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":3000",
		LogFile:             "logs/items.log",
		LogLevel:            "info",
		EventsHeartbeat:     15 * time.Second,
		RabbitExchange:      "items",
		RabbitQueue:         "items.intake",
		RabbitRoutingKey:    "items.create",
		RabbitConsumerTag:   "items-consumer",
		RabbitPublishPrefix: "items",
		RabbitPublishBuffer: 256,
		RabbitDialTimeout:   5 * time.Second,
		OTELServiceName:     "items-service",
		OTLPInsecure:        true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.ReleaseMode = os.Getenv("GIN_MODE") == "release"
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_PREFIX"); v != "" {
		cfg.RabbitPublishPrefix = v
	}

	if v := os.Getenv("RABBITMQ_PUBLISH_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RabbitPublishBuffer = n
		}
	}
	if v := os.Getenv("RABBITMQ_DIAL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RabbitDialTimeout = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("EVENTS_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EventsHeartbeat = time.Duration(n) * time.Second
		}
	}

	return cfg
}
