package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRun_ScopesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := globalLogger
	globalLogger = zap.New(core).Sugar()
	defer func() { globalLogger = prev }()

	WithRun("req-1", "run-1", "/public/scenarios/download").
		Infow("Scenario document downloaded")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", fields["request_id"])
	}
	if fields["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", fields["run_id"])
	}
	if fields["endpoint"] != "/public/scenarios/download" {
		t.Errorf("endpoint = %v, want the download path", fields["endpoint"])
	}
}

func TestInit(t *testing.T) {
	if err := Init("development"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("Expected a logger after Init")
	}
}
