// Package dataset loads clustered coin tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/profile"
)

// Canonical column names, as reported in schema errors.
const (
	ColName        = "name"
	ColAlgorithm   = "algorithm"
	ColProofType   = "proof_type"
	ColTotalMined  = "total_mined"
	ColTotalSupply = "total_supply"
	ColPC1         = "pc1"
	ColPC2         = "pc2"
	ColPC3         = "pc3"
	ColClusterID   = "cluster_id"
)

// columnAliases maps normalized header text to a canonical column.
// Normalization lowercases and drops spaces and underscores.
var columnAliases = map[string]string{
	"coinname":        ColName,
	"name":            ColName,
	"algorithm":       ColAlgorithm,
	"prooftype":       ColProofType,
	"totalcoinsmined": ColTotalMined,
	"totalmined":      ColTotalMined,
	"totalcoinsupply": ColTotalSupply,
	"totalsupply":     ColTotalSupply,
	"pc1":             ColPC1,
	"pc2":             ColPC2,
	"pc3":             ColPC3,
	"class":           ColClusterID,
	"clusterid":       ColClusterID,
	"cluster":         ColClusterID,
}

var requiredColumns = []string{
	ColName, ColAlgorithm, ColProofType, ColTotalMined, ColTotalSupply,
	ColPC1, ColPC2, ColPC3, ColClusterID,
}

// LoadCSV reads a clustered table from a file.
func LoadCSV(path string) ([]*domain.Coin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses a clustered table with a header row.
// Unknown columns, including a leading unnamed index column, are ignored.
// Every schema column is required. Blank or unparsable values are schema errors.
func ReadCSV(r io.Reader) ([]*domain.Coin, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, profile.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := mapHeader(header)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &profile.SchemaError{Column: col, Reason: "missing column"}
		}
	}

	var coins []*domain.Coin
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &profile.SchemaError{Row: row, Column: "*", Reason: "malformed record", Err: err}
		}

		c, err := parseRecord(row, record, index)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}

	if len(coins) == 0 {
		return nil, profile.ErrEmptyDataset
	}
	if err := Validate(coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// Validate checks every row against the coin schema.
func Validate(coins []*domain.Coin) error {
	return profile.ValidateCoins(coins)
}

func mapHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		col, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return index
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "").Replace(h)
}

func parseRecord(row int, record []string, index map[string]int) (*domain.Coin, error) {
	text := func(col string) (string, error) {
		i, ok := index[col]
		if !ok {
			return "", nil
		}
		if i >= len(record) {
			return "", &profile.SchemaError{Row: row, Column: col, Reason: "value is missing"}
		}
		return strings.TrimSpace(record[i]), nil
	}
	number := func(col string) (float64, error) {
		s, err := text(col)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return 0, &profile.SchemaError{Row: row, Column: col, Reason: "value is blank"}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &profile.SchemaError{Row: row, Column: col, Reason: fmt.Sprintf("not a finite number: %q", s), Err: err}
		}
		return v, nil
	}

	c := &domain.Coin{}
	var err error

	if c.Name, err = text(ColName); err != nil {
		return nil, err
	}
	if c.Algorithm, err = text(ColAlgorithm); err != nil {
		return nil, err
	}
	if c.ProofType, err = text(ColProofType); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{ColTotalMined, &c.TotalMined},
		{ColTotalSupply, &c.TotalSupply},
		{ColPC1, &c.PC1},
		{ColPC2, &c.PC2},
		{ColPC3, &c.PC3},
	} {
		if *f.dst, err = number(f.col); err != nil {
			return nil, err
		}
	}

	label, err := text(ColClusterID)
	if err != nil {
		return nil, err
	}
	if label == "" {
		return nil, &profile.SchemaError{Row: row, Column: ColClusterID, Reason: "value is blank"}
	}
	if c.ClusterID, err = parseClusterLabel(label); err != nil {
		return nil, &profile.SchemaError{Row: row, Column: ColClusterID, Reason: fmt.Sprintf("not an integer label: %q", label), Err: err}
	}

	return c, nil
}

// parseClusterLabel parses an int32 label. A zero fraction ("3.0") is
// accepted since float-typed exports write labels that way.
func parseClusterLabel(s string) (int, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if strings.Trim(s[i+1:], "0") != "" {
			return 0, fmt.Errorf("fractional label %q", s)
		}
		s = s[:i]
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// WriteCSV writes coins in the canonical snake_case layout accepted by ReadCSV.
func WriteCSV(w io.Writer, coins []*domain.Coin) error {
	cw := csv.NewWriter(w)
	header := []string{
		ColName, ColAlgorithm, ColProofType, ColTotalMined, ColTotalSupply,
		ColPC1, ColPC2, ColPC3, ColClusterID,
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range coins {
		record := []string{
			c.Name,
			c.Algorithm,
			c.ProofType,
			strconv.FormatFloat(c.TotalMined, 'f', -1, 64),
			strconv.FormatFloat(c.TotalSupply, 'f', -1, 64),
			strconv.FormatFloat(c.PC1, 'f', -1, 64),
			strconv.FormatFloat(c.PC2, 'f', -1, 64),
			strconv.FormatFloat(c.PC3, 'f', -1, 64),
			strconv.Itoa(c.ClusterID),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
