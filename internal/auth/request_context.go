package auth

import (
	"context"
)

type contextKey string

var clientClaimsKey contextKey = "client_claims"
var requestIDKey contextKey = "request_id"

func SetClientClaims(ctx context.Context, claims ClientClaims) context.Context {
	return context.WithValue(ctx, clientClaimsKey, claims)
}

func GetClientClaims(ctx context.Context) ClientClaims {
	val := ctx.Value(clientClaimsKey)
	if claims, ok := val.(ClientClaims); ok {
		return claims
	}
	return nil
}

// SetRequestID stores the request id in context for log correlation
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request id from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
