package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerV2_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithZap(zap.New(core))

	logger.Info("Order created", Fields{
		"order_id": int64(42),
		"status":   "PENDING",
		"error":    errors.New("boom"),
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["order_id"] != int64(42) {
		t.Errorf("Expected order_id 42, got %v", ctx["order_id"])
	}
	if ctx["status"] != "PENDING" {
		t.Errorf("Expected status PENDING, got %v", ctx["status"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("Expected error boom, got %v", ctx["error"])
	}
}

func TestLoggerV2_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewWithZap(zap.New(core)).With(Fields{"request_id": "req-1"})

	logger.Debug("dropped")
	logger.Warn("kept")

	if logs.Len() != 1 {
		t.Fatalf("Expected 1 entry at info level, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["request_id"] != "req-1" {
		t.Error("Expected request_id to be carried by child logger")
	}
}

func TestNilLoggerSafety(t *testing.T) {
	var logger *LoggerV2
	logger.Info("nothing happens")
	logger.With(Fields{"k": "v"}).Error("still nothing")
}

func TestNewLoggerV2_UsesBase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetBase(zap.New(core))
	defer SetBase(nil)

	NewLoggerV2("console").Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["service"] != "console" {
		t.Error("Expected service field on named logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
