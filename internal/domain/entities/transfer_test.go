package entities

import (
	"encoding/json"
	"testing"
)

func TestTransferTargetJSON(t *testing.T) {
	cases := []struct {
		name   string
		target TransferTarget
		want   string
	}{
		{"agent", AgentTarget("agent-B"), `"agent-B"`},
		{"phone", PhoneTarget("+15550001111"), `"+15550001111"`},
		{"unassigned", UnassignedTarget(), "null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.target)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, data)
			}
		})
	}
}

func TestTransferTargetUnmarshalNull(t *testing.T) {
	var target TransferTarget
	if err := json.Unmarshal([]byte("null"), &target); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if target.IsAssigned() {
		t.Fatalf("null must decode to unassigned, got %+v", target)
	}

	if err := json.Unmarshal([]byte(`"agent-B"`), &target); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !target.IsAssigned() || target.Value != "agent-B" {
		t.Fatalf("unexpected target: %+v", target)
	}
}

func TestPatchEmptiness(t *testing.T) {
	if !(CallPatch{}).IsEmpty() {
		t.Fatal("zero CallPatch must be empty")
	}
	status := CallStatusTransferring
	if (CallPatch{Status: &status}).IsEmpty() {
		t.Fatal("patch with a field must not be empty")
	}

	if !(TransferPatch{}).IsEmpty() {
		t.Fatal("zero TransferPatch must be empty")
	}
	if !(AgentPatch{}).IsEmpty() {
		t.Fatal("zero AgentPatch must be empty")
	}
	if !(SummaryPatch{}).IsEmpty() {
		t.Fatal("zero SummaryPatch must be empty")
	}
	if !(TranscriptPatch{}).IsEmpty() {
		t.Fatal("zero TranscriptPatch must be empty")
	}
}
