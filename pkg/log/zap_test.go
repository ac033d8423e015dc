package log

import (
	"context"
	"testing"
)

func TestKV(t *testing.T) {
	tests := []struct {
		name   string
		arg    []any
		wantOK bool
		msg    string
	}{
		{name: "message with pairs", arg: []any{"done", "provider", "qwen", "tokens", 3}, wantOK: true, msg: "done"},
		{name: "single message", arg: []any{"plain"}, wantOK: false},
		{name: "odd pair count", arg: []any{"msg", "k"}, wantOK: false},
		{name: "non-string key", arg: []any{"msg", 1, "v"}, wantOK: false},
		{name: "non-string message", arg: []any{42, "k", "v"}, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, _, ok := kv(tc.arg)
			if ok != tc.wantOK {
				t.Fatalf("kv() ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && msg != tc.msg {
				t.Errorf("kv() msg = %q, want %q", msg, tc.msg)
			}
		})
	}
}

func TestInit_DoesNotPanic(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	for _, cfg := range []ZapConfig{
		{Level: "debug", Mode: "development", Encoding: EncodingConsole, ColorEnabled: true},
		{Level: "warn", Mode: ModeProduction, Encoding: EncodingJSON},
		{Level: "not-a-level", Encoding: EncodingConsole},
	} {
		l := Init(cfg)
		l.Debug(ctx, "debug")
		l.Infof(ctx, "info %d", 1)
		l.Warn(ctx, "structured", "key", "value")
	}
}
