package constants

import (
	"errors"
	"os"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetReportDir() string {
	return getEnv("REPORT_DIR", "./out")
}

var ErrMediaDirUnset = errors.New("MEDIA_PATH environment variable is not set")

func GetMediaDir() (string, error) {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path, nil
	}
	return "", ErrMediaDirUnset
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetRegion() string {
	return getEnv("AWS_REGION", "localhost")
}

func GetReportTable() string {
	return getEnv("REPORT_TABLE", "midiscope-reports")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

// DynamoDB BatchWriteItem limit
const MaxBatchWrite = 25

// request bodies above this are rejected by the server
const MaxUploadSize = 16 * 1024 * 1024
