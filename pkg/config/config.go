package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// DynamoDB. Endpoint is set when running against dynamodb-local.
	ProductTableName  string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	CustomerTableName string `envconfig:"CUSTOMER_TABLE_NAME" default:"customers-table"`
	SaleTableName     string `envconfig:"SALE_TABLE_NAME" default:"sales-table"`
	DynamoEndpoint    string `envconfig:"DYNAMO_ENDPOINT" default:""`

	// Kafka event publishing, disabled when no brokers are configured.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"sale-events"`

	// Outbound report email (Resend).
	ResendAPIKey string `envconfig:"RESEND_API_KEY" default:""`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"reports@stockbook.local"`

	// Deleting a sale keeps the historical stock deduction unless this
	// is enabled.
	RestoreStockOnDelete bool `envconfig:"RESTORE_STOCK_ON_DELETE" default:"false"`

	TLSEnabled      bool   `envconfig:"TLS_ENABLED" default:"false"`
	SpireSocketPath string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
