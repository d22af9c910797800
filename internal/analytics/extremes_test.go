package analytics

import (
	"testing"

	"FlowScope/internal/model"
)

func TestExtremesEmptyInput(t *testing.T) {
	if _, ok := MaxFlow(nil, FieldPktCount); ok {
		t.Error("expected no max flow for empty input")
	}
	if _, ok := MinFlow(nil, FieldByteCount); ok {
		t.Error("expected no min flow for empty input")
	}
}

// A singleton list is both the max and the min.
func TestExtremesSingleton(t *testing.T) {
	flows := []model.FlowRecord{{Src: "only", PktCount: u64(3), ByteCount: u64(300)}}

	for _, field := range []VolumeField{FieldPktCount, FieldByteCount} {
		if f, ok := MaxFlow(flows, field); !ok || f.Src != "only" {
			t.Errorf("expected singleton as max of %s, got %v/%v", field, f.Src, ok)
		}
		if f, ok := MinFlow(flows, field); !ok || f.Src != "only" {
			t.Errorf("expected singleton as min of %s, got %v/%v", field, f.Src, ok)
		}
	}
}

func TestMaxFlowMissingDefaultsToZero(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "a"},
		{Src: "b", PktCount: u64(1)},
	}

	f, ok := MaxFlow(flows, FieldPktCount)
	if !ok || f.Src != "b" {
		t.Errorf("expected b as max, got %s", f.Src)
	}
}

// A flow lacking the field must never be reported as minimal.
func TestMinFlowSkipsMissingValues(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "a"},
		{Src: "b", ByteCount: u64(9000)},
		{Src: "c", ByteCount: u64(100)},
	}

	f, ok := MinFlow(flows, FieldByteCount)
	if !ok || f.Src != "c" {
		t.Errorf("expected c as min, got %s", f.Src)
	}
}

func TestExtremesTieKeepsFirstEncountered(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "first", PktCount: u64(5)},
		{Src: "second", PktCount: u64(5)},
	}

	if f, _ := MaxFlow(flows, FieldPktCount); f.Src != "first" {
		t.Errorf("expected first flow to win max tie, got %s", f.Src)
	}
	if f, _ := MinFlow(flows, FieldPktCount); f.Src != "first" {
		t.Errorf("expected first flow to win min tie, got %s", f.Src)
	}
}
