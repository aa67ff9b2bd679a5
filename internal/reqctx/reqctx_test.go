package reqctx_test

import (
	"context"
	"testing"

	"reelfx/internal/reqctx"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = reqctx.WithSessionID(ctx, "sess-1")
	ctx = reqctx.WithRequestID(ctx, "req-123")
	ctx = reqctx.WithFrame(ctx, 0)

	if id, ok := reqctx.SessionIDFromContext(ctx); !ok || id != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if rid, ok := reqctx.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if frame, ok := reqctx.FrameFromContext(ctx); !ok || frame != 0 {
		t.Fatalf("unexpected frame: %v %v", frame, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = reqctx.WithRequestID(ctx, "")
	ctx = reqctx.WithSessionID(ctx, "")
	if _, ok := reqctx.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
	if _, ok := reqctx.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session id value")
	}
	if _, ok := reqctx.FrameFromContext(ctx); ok {
		t.Fatal("expected no frame value")
	}
}
