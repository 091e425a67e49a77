package goap

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestPlanner_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	planner := NewPlanner[*testAgent](WithTracer(tp.Tracer("test")))
	goal := Goal[*testAgent]{Name: "Get Weapon", Satisfies: func(s WorldState) bool { return s.HasWeapon }}

	if _, ok := planner.Plan(context.Background(), &testAgent{}, []Action[*testAgent]{pickupWeapon()}, baseState, goal); !ok {
		t.Fatal("expected a plan")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "goap.Plan" {
		t.Errorf("span name = %q, want goap.Plan", spans[0].Name())
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["goap.goal"].AsString(); got != "Get Weapon" {
		t.Errorf("goap.goal = %q, want Get Weapon", got)
	}
	if got := attrs["goap.found"].AsBool(); !got {
		t.Error("goap.found = false, want true")
	}
	if got := attrs["goap.plan.length"].AsInt64(); got != 1 {
		t.Errorf("goap.plan.length = %d, want 1", got)
	}
}
