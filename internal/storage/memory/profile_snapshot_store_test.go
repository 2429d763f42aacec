package memory

import (
	"context"
	"errors"
	"testing"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/storage"
)

func snapshot(id, run, dataset string, cluster int, at int64) *domain.ProfileSnapshot {
	return &domain.ProfileSnapshot{
		SnapshotID:  id,
		RunID:       run,
		DatasetID:   dataset,
		ClusterID:   cluster,
		Name:        "Cluster",
		Size:        10,
		RiskScore:   5,
		RiskLevel:   domain.RiskLevelMedium,
		GeneratedAt: at,
	}
}

func TestProfileSnapshotStore_InsertAndGet(t *testing.T) {
	store := NewProfileSnapshotStore()
	ctx := context.Background()

	if err := store.Insert(ctx, snapshot("s1", "r1", "ds", 0, 1000)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RunID != "r1" || got.RiskLevel != domain.RiskLevelMedium {
		t.Errorf("unexpected snapshot: %+v", got)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileSnapshotStore_DuplicateKey(t *testing.T) {
	store := NewProfileSnapshotStore()
	ctx := context.Background()
	_ = store.Insert(ctx, snapshot("s1", "r1", "ds", 0, 1000))

	if err := store.Insert(ctx, snapshot("s1", "r2", "ds", 1, 2000)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestProfileSnapshotStore_InsertBulkAtomic(t *testing.T) {
	store := NewProfileSnapshotStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.ProfileSnapshot{
		snapshot("s1", "r1", "ds", 0, 1000),
		snapshot("s1", "r1", "ds", 1, 1000),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for intra-batch duplicate, got %v", err)
	}

	runs, _ := store.GetByRun(ctx, "r1")
	if len(runs) != 0 {
		t.Errorf("failed batch must not insert anything, got %d rows", len(runs))
	}
}

func TestProfileSnapshotStore_Ordering(t *testing.T) {
	store := NewProfileSnapshotStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.ProfileSnapshot{
		snapshot("b1", "r2", "ds", 1, 2000),
		snapshot("a1", "r1", "ds", 1, 1000),
		snapshot("a0", "r1", "ds", 0, 1000),
		snapshot("x0", "r3", "other", 0, 500),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	byRun, _ := store.GetByRun(ctx, "r1")
	if len(byRun) != 2 || byRun[0].ClusterID != 0 || byRun[1].ClusterID != 1 {
		t.Errorf("GetByRun order wrong: %+v", byRun)
	}

	byDataset, _ := store.GetByDataset(ctx, "ds")
	want := []string{"a0", "a1", "b1"}
	if len(byDataset) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(byDataset))
	}
	for i, id := range want {
		if byDataset[i].SnapshotID != id {
			t.Errorf("row %d: got %s, want %s", i, byDataset[i].SnapshotID, id)
		}
	}
}
