package miniowr

// Config defines the connection options for an S3 compatible endpoint.
type Config struct {
	// Endpoint is the host[:port] of the store (e.g., "localhost:9000" or "<account>.r2.cloudflarestorage.com").
	Endpoint string `yaml:"endpoint" validate:"required"`

	// AccessKey is the access key for authentication.
	AccessKey string `yaml:"access_key" validate:"required"`

	// SecretKey is the secret key for authentication.
	SecretKey string `yaml:"secret_key" validate:"required" mask:"true"`

	// Bucket holds every object of the virtual filesystem.
	Bucket string `yaml:"bucket" validate:"required"`

	// Region is sent with signed requests. R2 expects "auto".
	Region string `yaml:"region"`

	// UseSSL enables HTTPS.
	UseSSL bool `yaml:"use_ssl" default:"true"`

	// CreateBucket creates Bucket on startup when it does not exist.
	CreateBucket bool `yaml:"create_bucket" default:"false"`
}
