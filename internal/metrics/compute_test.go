package metrics

import (
	"math"
	"testing"

	"crypto-cluster-insights/internal/domain"
)

func TestComputeStddev_SampleFormula(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := computeMean(values)
	if mean != 5 {
		t.Fatalf("expected mean 5, got %f", mean)
	}

	// sum of squared deviations = 32, n-1 = 7
	want := math.Sqrt(32.0 / 7.0)
	got := computeStddev(values, mean)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected stddev %f, got %f", want, got)
	}
}

func TestComputeStddev_SingleValueIsZero(t *testing.T) {
	got := computeStddev([]float64{21000000}, 21000000)
	if got != 0 {
		t.Errorf("expected 0 for single value, got %f", got)
	}
	if math.IsNaN(got) {
		t.Error("stddev must not be NaN")
	}
}

func TestComputeMean_Empty(t *testing.T) {
	if got := computeMean(nil); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestTopCounts_OrderAndTieBreak(t *testing.T) {
	values := []string{"X11", "Scrypt", "SHA-256", "Scrypt", "X11", "Ethash", "Quark"}

	got := TopCounts(values, 3)

	// X11 and Scrypt tie at 2; X11 appeared first. SHA-256 appeared before Ethash and Quark.
	want := []domain.CountEntry{
		{Key: "X11", Count: 2},
		{Key: "Scrypt", Count: 2},
		{Key: "SHA-256", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopCounts_FullTable(t *testing.T) {
	got := TopCounts([]string{"PoW", "PoS", "PoW"}, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Key != "PoW" || got[0].Count != 2 {
		t.Errorf("unexpected first entry %+v", got[0])
	}
}

func TestComputeFromCoins_Members(t *testing.T) {
	coins := []*domain.Coin{
		{Name: "Bitcoin", Algorithm: "SHA-256", ProofType: "PoW", TotalMined: 17927175, TotalSupply: 21000000},
		{Name: "Ethereum", Algorithm: "Ethash", ProofType: "PoW", TotalMined: 107684222, TotalSupply: 0},
	}

	s := computeFromCoins(0, coins)

	if s.Size != 2 {
		t.Errorf("expected size 2, got %d", s.Size)
	}
	if s.AvgSupply != 10500000 {
		t.Errorf("expected avg supply 10500000, got %f", s.AvgSupply)
	}
	if !s.HasMember("Bitcoin") || !s.HasMember("Ethereum") {
		t.Error("expected Bitcoin and Ethereum to be members")
	}
	if s.HasMember("Litecoin") {
		t.Error("Litecoin is not a member")
	}
	if s.DominantAlgorithm() != "SHA-256" {
		t.Errorf("expected dominant algorithm SHA-256, got %s", s.DominantAlgorithm())
	}
	if s.DominantProofType() != "PoW" {
		t.Errorf("expected dominant proof PoW, got %s", s.DominantProofType())
	}
	if s.MemberNames[0] != "Bitcoin" || s.MemberNames[1] != "Ethereum" {
		t.Errorf("member names must keep row order, got %v", s.MemberNames)
	}
}
