package logger

import (
	"context"
	"testing"
)

func TestForCarriesRequestID(t *testing.T) {
	ctx := ContextWithID(context.Background(), "abc")
	entry := For(ctx)
	if got := entry.Data["request_id"]; got != "abc" {
		t.Fatalf("request_id = %v", got)
	}
	if IDFrom(ctx) != "abc" {
		t.Fatalf("IDFrom = %q", IDFrom(ctx))
	}
}

func TestForWithoutID(t *testing.T) {
	entry := For(context.Background())
	if _, ok := entry.Data["request_id"]; ok {
		t.Fatal("unexpected request_id field")
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatal("ids should differ")
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup("chatty"); err == nil {
		t.Fatal("expected error")
	}
	if err := Setup("info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
