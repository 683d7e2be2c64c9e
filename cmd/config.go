package cmd

import "time"

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	KafkaBrokers     string
	KafkaOrderTopic  string
	InventoryBaseURL string
	InventoryTimeout time.Duration
	OutboxRelayBatch int
}
