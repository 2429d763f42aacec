package idhash

import "testing"

func TestComputeSnapshotID(t *testing.T) {
	a := ComputeSnapshotID("run-1", "ds", 0)
	b := ComputeSnapshotID("run-1", "ds", 1)
	c := ComputeSnapshotID("run-2", "ds", 0)

	if len(a) != 64 {
		t.Errorf("ComputeSnapshotID() length = %d, want 64", len(a))
	}
	if a == b || a == c {
		t.Error("ComputeSnapshotID() collided across distinct inputs")
	}
	if a != ComputeSnapshotID("run-1", "ds", 0) {
		t.Error("ComputeSnapshotID() not deterministic")
	}
}
