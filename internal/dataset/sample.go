package dataset

import (
	"fmt"
	"math/rand/v2"

	"crypto-cluster-insights/internal/domain"
)

const (
	sampleSize     = 100
	sampleSeed     = 42
	sampleClusters = 4
)

var (
	sampleAlgorithms = []string{"Scrypt", "SHA-256", "Ethash", "X11"}
	sampleProofTypes = []string{"PoW", "PoS", "PoW/PoS"}
)

// sampleMajors replace the first rows so the demo always has an established cluster.
var sampleMajors = []domain.Coin{
	{Name: "Bitcoin", Algorithm: "SHA-256", ProofType: "PoW", TotalMined: 17927175, TotalSupply: 21000000, PC1: -0.15, PC2: -1.37, PC3: 0.16, ClusterID: 3},
	{Name: "Ethereum", Algorithm: "Ethash", ProofType: "PoW", TotalMined: 107684222, TotalSupply: 0, PC1: -0.16, PC2: -2.04, PC3: 0.39, ClusterID: 3},
	{Name: "Litecoin", Algorithm: "Scrypt", ProofType: "PoW", TotalMined: 63039243, TotalSupply: 84000000, PC1: -0.16, PC2: -1.05, PC3: 0.01, ClusterID: 3},
}

// SampleDataset returns a deterministic 100-row demo table.
func SampleDataset() []*domain.Coin {
	rng := rand.New(rand.NewPCG(sampleSeed, 0))

	coins := make([]*domain.Coin, sampleSize)
	for i := range coins {
		coins[i] = &domain.Coin{
			Name:        fmt.Sprintf("Coin_%d", i),
			Algorithm:   sampleAlgorithms[rng.IntN(len(sampleAlgorithms))],
			ProofType:   sampleProofTypes[rng.IntN(len(sampleProofTypes))],
			TotalMined:  rng.ExpFloat64() * 1e7,
			TotalSupply: rng.ExpFloat64() * 1e8,
			PC1:         rng.NormFloat64(),
			PC2:         rng.NormFloat64(),
			PC3:         rng.NormFloat64(),
			ClusterID:   rng.IntN(sampleClusters),
		}
	}
	for i := range sampleMajors {
		c := sampleMajors[i]
		coins[i] = &c
	}
	return coins
}
