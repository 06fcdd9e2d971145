package meta

import "sync"

var (
	serviceName    string    //nolint:gochecknoglobals // set once at startup
	serviceVersion string    //nolint:gochecknoglobals // set once at startup
	once           sync.Once //nolint:gochecknoglobals // ensures SetServiceInfo is applied once
)

// SetServiceInfo sets the service name and version reported in logs, traces and health checks.
// Subsequent calls are ignored.
func SetServiceInfo(name, version string) {
	once.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// ServiceName returns the service name.
func ServiceName() string {
	return serviceName
}

// ServiceVersion returns the service version.
func ServiceVersion() string {
	return serviceVersion
}
