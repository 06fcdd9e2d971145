package app

import (
	"time"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/objstore/miniowr"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/observability/tracing"
	"github.com/rise-and-shine/bucketfs/vfs"
)

// Store drivers.
const (
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Config is the root configuration of the service, loaded from ./config/${ENVIRONMENT}.yaml.
type Config struct {
	Service    ServiceConfig  `yaml:"service"`
	Logger     logger.Config  `yaml:"logger"`
	HTTPServer server.Config  `yaml:"http_server"`
	Store      StoreConfig    `yaml:"store"`
	VFS        vfs.Config     `yaml:"vfs"`
	Tracing    tracing.Config `yaml:"tracing"`
}

// ServiceConfig identifies the running service in logs, traces and health responses.
type ServiceConfig struct {
	Name    string `yaml:"name"    default:"bucketfs" validate:"required"`
	Version string `yaml:"version" default:"dev"      validate:"required"`
}

// StoreConfig selects and tunes the object store backend.
type StoreConfig struct {
	// Driver is "minio" for any S3 compatible endpoint or "memory" for local development.
	Driver string `yaml:"driver" default:"minio" validate:"oneof=minio memory"`

	// Minio is required by the minio driver.
	Minio *miniowr.Config `yaml:"minio" validate:"required_if=Driver minio"`

	// RateLimit caps store requests per second across the process. Zero disables throttling.
	RateLimit float64 `yaml:"rate_limit" default:"0" validate:"min=0"`

	// RateBurst is the number of requests allowed above RateLimit in a burst.
	RateBurst int `yaml:"rate_burst" default:"100" validate:"min=1"`

	// ConnectAttempts is the number of startup connectivity checks before giving up with a warning.
	ConnectAttempts uint `yaml:"connect_attempts" default:"3" validate:"min=1"`

	// ConnectDelay is the initial delay between connectivity checks.
	ConnectDelay time.Duration `yaml:"connect_delay" default:"1s"`
}
