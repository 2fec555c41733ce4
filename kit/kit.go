// Package kit holds the small transport glue shared by the HTTP and MCP
// surfaces: the Endpoint shape and request-scoped context helpers.
package kit

import "context"

// Endpoint is a transport-agnostic handler: decoded request in, response out.
type Endpoint func(ctx context.Context, req any) (any, error)

type contextKey string

const (
	RequestIDKey contextKey = "kit_request_id"
	SourceKey    contextKey = "kit_source" // "http", "mcp"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

func WithSource(ctx context.Context, s string) context.Context {
	return context.WithValue(ctx, SourceKey, s)
}

func GetSource(ctx context.Context) string {
	if v, ok := ctx.Value(SourceKey).(string); ok {
		return v
	}
	return "http"
}
