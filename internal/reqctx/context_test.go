package reqctx

import (
	"context"
	"testing"
)

func TestRID(t *testing.T) {
	ctx := context.Background()
	if got := RID(ctx); got != "-" {
		t.Fatalf("got=%q want=-", got)
	}
	ctx = WithRID(ctx, "abc")
	if got := RID(ctx); got != "abc" {
		t.Fatalf("got=%q want=abc", got)
	}
}

func TestSlug(t *testing.T) {
	ctx := WithSlug(context.Background(), "prusament-petg")
	if got := Slug(ctx); got != "prusament-petg" {
		t.Fatalf("got=%q", got)
	}
	if got := Slug(context.Background()); got != "" {
		t.Fatalf("got=%q want empty", got)
	}
}
