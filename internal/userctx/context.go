package userctx

import (
	"context"
	"strings"
)

type userEmailKey struct{}
type requestIDKey struct{}
type ipAddressKey struct{}

// WithUserEmail stores the acting user's email in the context.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey{}, strings.TrimSpace(email))
}

// UserEmailFromContext returns the acting user's email, if set.
func UserEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if email, ok := ctx.Value(userEmailKey{}).(string); ok {
		return email
	}
	return ""
}

// WithRequestID stores the request correlation ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request correlation ID, if set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithIPAddress stores the client IP in the context.
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipAddressKey{}, ip)
}

// IPAddressFromContext returns the client IP, if set.
func IPAddressFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if ip, ok := ctx.Value(ipAddressKey{}).(string); ok {
		return ip
	}
	return ""
}
