package runrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID     string
	BigQueryDataset       string
	BigQueryGenerationTbl string
	BigQueryLowStockTbl   string
}

func LoadConfig() *Config {
	return &Config{
		Disabled: os.Getenv("LEDGER_RESULTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "ledger_results"),

		BigQueryProjectID:     getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:       getEnvOrDefault("BIGQUERY_DATASET", "ledger_results"),
		BigQueryGenerationTbl: getEnvOrDefault("BIGQUERY_GENERATION_TABLE", "schedule_generations"),
		BigQueryLowStockTbl:   getEnvOrDefault("BIGQUERY_LOW_STOCK_TABLE", "low_stock_forecasts"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
