package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
)

func TestLoggerFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "debug")
	t.Cleanup(func() { Init(os.Stdout, "info") })

	ctx := WithRequestID(context.Background(), "req-42")
	LoggerFromContext(ctx).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if line["request_id"] != "req-42" {
		t.Fatalf("expected request_id, got %v", line["request_id"])
	}
}

func TestInitRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "warn")
	t.Cleanup(func() { Init(os.Stdout, "info") })

	Logger().Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered at warn level: %s", buf.String())
	}
	Logger().Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn line should be written")
	}
}
