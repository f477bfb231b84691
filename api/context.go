package api

import (
	"context"
)

type keyType string

const (
	viewerIDKey     keyType = "viewerID"
	sessionTokenKey keyType = "sessionToken"
)

// ctxWithViewer adds the resolved viewer id and session token to the context.
func ctxWithViewer(ctx context.Context, viewerID uint, token string) context.Context {
	ctx = context.WithValue(ctx, viewerIDKey, viewerID)
	return context.WithValue(ctx, sessionTokenKey, token)
}

// ctxViewerID retrieves the viewer id from the context. 0 means anonymous:
// requests that never passed the session middleware read the same as
// requests with no cookie.
func ctxViewerID(ctx context.Context) uint {
	if v, ok := ctx.Value(viewerIDKey).(uint); ok {
		return v
	}
	return 0
}

// ctxSessionToken retrieves the raw session token, empty when absent.
func ctxSessionToken(ctx context.Context) string {
	if t, ok := ctx.Value(sessionTokenKey).(string); ok {
		return t
	}
	return ""
}
