package config

import (
	"os"
)

type StorageConfig struct {
	Region   string
	Bucket   string
	Endpoint string
	// Prefix is prepended to every stored object key so one bucket can
	// serve several deployments.
	Prefix string
}

func LoadStorageConfig() StorageConfig {
	prefix := os.Getenv("S3_KEY_PREFIX")
	if prefix == "" {
		prefix = "lampiran"
	}

	return StorageConfig{
		Region:   os.Getenv("AWS_REGION"),
		Bucket:   os.Getenv("AWS_S3_BUCKET"),
		Endpoint: os.Getenv("S3_ENDPOINT_URL"),
		Prefix:   prefix,
	}
}
