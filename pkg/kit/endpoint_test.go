package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mark := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				calls = append(calls, name)
				return next(ctx, req)
			}
		}
	}
	ep := Chain(mark("a"), mark("b"), mark("c"))(func(context.Context, any) (any, error) {
		calls = append(calls, "endpoint")
		return nil, nil
	})

	ep(context.Background(), nil)
	if got := strings.Join(calls, ","); got != "a,b,c,endpoint" {
		t.Errorf("call order = %s", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	ep := RequestID()(func(ctx context.Context, _ any) (any, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	})

	ep(context.Background(), nil)
	if seen == "" {
		t.Error("request id not set")
	}

	ep(WithRequestID(context.Background(), "fixed"), nil)
	if seen != "fixed" {
		t.Errorf("request id = %q, want the caller's", seen)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Logging(logger, "highlight")(func(context.Context, any) (any, error) { return "x", nil })
	fail := Logging(logger, "filter")(func(context.Context, any) (any, error) { return nil, errors.New("boom") })

	ctx := WithTransport(WithRequestID(context.Background(), "r1"), "mcp")
	if resp, err := ok(ctx, nil); err != nil || resp != "x" {
		t.Errorf("ok endpoint = %v, %v", resp, err)
	}
	if _, err := fail(ctx, nil); err == nil {
		t.Error("expected error to pass through")
	}

	out := buf.String()
	for _, want := range []string{"endpoint=highlight", "endpoint=filter", "request_id=r1", "transport=mcp", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestGetTransportDefault(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("GetTransport = %q, want http", got)
	}
}
