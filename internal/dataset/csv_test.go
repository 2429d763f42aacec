package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-cluster-insights/internal/profile"
)

const exportedTable = `,CoinName,Algorithm,ProofType,TotalCoinsMined,TotalCoinSupply,PC 1,PC 2,PC 3,Class
42,42 Coin,Scrypt,PoW/PoS,41.99995,42,-0.33,1.03,-0.54,1
BTC,Bitcoin,SHA-256,PoW,17927175,21000000,-0.15,-1.37,0.16,3
ETH,Ethereum,Ethash,PoW,107684222,0,-0.16,-2.04,0.39,3
`

func TestReadCSV_ExportFormat(t *testing.T) {
	coins, err := ReadCSV(strings.NewReader(exportedTable))
	require.NoError(t, err)

	require.Len(t, coins, 3)
	assert.Equal(t, "42 Coin", coins[0].Name)
	assert.Equal(t, "PoW/PoS", coins[0].ProofType)
	assert.InDelta(t, 41.99995, coins[0].TotalMined, 1e-9)
	assert.InDelta(t, -0.33, coins[0].PC1, 1e-9)
	assert.Equal(t, 1, coins[0].ClusterID)
	assert.Equal(t, "Ethereum", coins[2].Name)
	assert.Equal(t, 0.0, coins[2].TotalSupply)
	assert.Equal(t, 3, coins[2].ClusterID)
}

func TestReadCSV_SnakeCase(t *testing.T) {
	table := "name,algorithm,proof_type,total_mined,total_supply,pc1,pc2,pc3,cluster_id\n" +
		"AltCoin,Scrypt,PoS,1000,1000000,0.5,-0.25,0,1.0\n"

	coins, err := ReadCSV(strings.NewReader(table))
	require.NoError(t, err)

	require.Len(t, coins, 1)
	assert.Equal(t, 1, coins[0].ClusterID)
	assert.Equal(t, 0.5, coins[0].PC1)
	assert.Equal(t, -0.25, coins[0].PC2)
}

const pcHeader = "CoinName,Algorithm,ProofType,TotalCoinsMined,TotalCoinSupply,PC 1,PC 2,PC 3,Class\n"

func TestReadCSV_MissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
		column string
	}{
		{"supply", "CoinName,Algorithm,ProofType,TotalCoinsMined,PC 1,PC 2,PC 3,Class", ColTotalSupply},
		{"principal component", "CoinName,Algorithm,ProofType,TotalCoinsMined,TotalCoinSupply,PC 1,PC 3,Class", ColPC2},
		{"all principal components", "CoinName,Algorithm,ProofType,TotalCoinsMined,TotalCoinSupply,Class", ColPC1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.header + "\nA,X,PoW,1,2,0,0,0,0\n"))

			var schemaErr *profile.SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %v", err)
			assert.Equal(t, 0, schemaErr.Row)
			assert.Equal(t, tt.column, schemaErr.Column)
		})
	}
}

func TestReadCSV_BlankNumeric(t *testing.T) {
	table := pcHeader +
		"A,X,PoW,1,2,0,0,0,0\n" +
		"B,X,PoW,,2,0,0,0,0\n"

	_, err := ReadCSV(strings.NewReader(table))

	var schemaErr *profile.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, 2, schemaErr.Row)
	assert.Equal(t, ColTotalMined, schemaErr.Column)
}

func TestReadCSV_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"unparsable supply", "A,X,PoW,1,lots,0,0,0,0", ColTotalSupply},
		{"negative mined", "A,X,PoW,-5,2,0,0,0,0", "total_mined"},
		{"fractional cluster", "A,X,PoW,1,2,0,0,0,0.5", ColClusterID},
		{"blank name", ",X,PoW,1,2,0,0,0,0", "name"},
		{"infinite supply", "A,X,PoW,1,Inf,0,0,0,0", ColTotalSupply},
		{"blank pc", "Bitcoin,SHA-256,PoW,1,2,,,,0", ColPC1},
		{"blank third pc", "Bitcoin,SHA-256,PoW,1,2,0.1,0.2,,0", ColPC3},
		{"nan pc", "A,X,PoW,1,2,0,NaN,0,0", ColPC2},
		{"blank cluster", "A,X,PoW,1,2,0,0,0,", ColClusterID},
		{"exponent cluster", "Bitcoin,SHA-256,PoW,1,2,0,0,0,1e30", ColClusterID},
		{"cluster beyond int32", "A,X,PoW,1,2,0,0,0,2147483648", ColClusterID},
		{"cluster beyond int64", "A,X,PoW,1,2,0,0,0,99999999999999999999", ColClusterID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(pcHeader + tt.row + "\n"))

			var schemaErr *profile.SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %v", err)
			assert.Equal(t, 1, schemaErr.Row)
			assert.Equal(t, tt.column, schemaErr.Column)
		})
	}
}

func TestReadCSV_DistinctLargeLabels(t *testing.T) {
	table := pcHeader +
		"A,X,PoW,1,2,0,0,0,2147483647\n" +
		"B,X,PoW,1,2,0,0,0,-2147483648\n" +
		"C,X,PoW,1,2,0,0,0,7.00\n"

	coins, err := ReadCSV(strings.NewReader(table))
	require.NoError(t, err)

	require.Len(t, coins, 3)
	assert.Equal(t, 2147483647, coins[0].ClusterID)
	assert.Equal(t, -2147483648, coins[1].ClusterID)
	assert.Equal(t, 7, coins[2].ClusterID)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, profile.ErrEmptyDataset)

	_, err = ReadCSV(strings.NewReader(pcHeader))
	assert.ErrorIs(t, err, profile.ErrEmptyDataset)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	coins := SampleDataset()[:5]

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, coins))

	path := filepath.Join(t.TempDir(), "coins.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, coins, loaded)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
