package reqctx

import "context"

type ctxKey string

const (
	keyRID  ctxKey = "rid"
	keySlug ctxKey = "spool_slug"
)

// WithRID stores the request correlation id used in log lines.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present, "-" otherwise.
func RID(ctx context.Context) string {
	if v, _ := ctx.Value(keyRID).(string); v != "" {
		return v
	}
	return "-"
}

// WithSlug stores the catalog slug being written.
func WithSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, keySlug, slug)
}

// Slug returns the catalog slug if present.
func Slug(ctx context.Context) string {
	v, _ := ctx.Value(keySlug).(string)
	return v
}
