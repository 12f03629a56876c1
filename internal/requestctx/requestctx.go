// Package requestctx carries the request id through context without creating
// an import cycle between middleware and handlers.
package requestctx

import "context"

type key struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// GetRequestID returns the id stored by WithRequestID, or "" outside a
// request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
