// Package meta carries request scoped metadata through context.Context.
package meta

import "context"

// ContextKey is the type of every metadata key stored in a context.
type ContextKey string

const (
	// TraceID identifies one request across logs and spans.
	TraceID ContextKey = "trace_id"

	// IPAddress is the client address as resolved by the HTTP server.
	IPAddress ContextKey = "ip_address"

	// UserAgent is the client User-Agent header.
	UserAgent ContextKey = "user_agent"

	// Referer is the client Referer header.
	Referer ContextKey = "referer"

	// Operation names the filesystem operation being served, e.g. "rename".
	Operation ContextKey = "operation"

	ServiceNameKey    ContextKey = "service_name"
	ServiceVersionKey ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed extraction order for logging
var allKeys = []ContextKey{
	TraceID,
	IPAddress,
	UserAgent,
	Referer,
	Operation,
	ServiceNameKey,
	ServiceVersionKey,
}

// InjectMetaToContext stores every non-empty value of data in ctx.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns all known metadata present in ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v := Find(ctx, k); v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value stored under key, or "" when absent.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
