package domain

// CountEntry is one row of an ordered frequency table.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ClusterStatistics holds per-cluster aggregates.
// Computed once from the immutable dataset.
type ClusterStatistics struct {
	ClusterID    int
	Size         int
	AvgSupply    float64
	AvgMined     float64
	SupplyStddev float64 // sample stddev, 0 when Size < 2
	MinedStddev  float64 // sample stddev, 0 when Size < 2

	TopAlgorithms []CountEntry // <= 3, count DESC, first appearance wins ties
	TopProofTypes []CountEntry // <= 3, same ordering

	MemberNames []string            // row order
	Members     map[string]struct{} // set view of MemberNames
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s *ClusterStatistics) Clone() ClusterStatistics {
	out := *s
	out.TopAlgorithms = append([]CountEntry(nil), s.TopAlgorithms...)
	out.TopProofTypes = append([]CountEntry(nil), s.TopProofTypes...)
	out.MemberNames = append([]string(nil), s.MemberNames...)
	if s.Members != nil {
		out.Members = make(map[string]struct{}, len(s.Members))
		for name := range s.Members {
			out.Members[name] = struct{}{}
		}
	}
	return out
}

// DominantAlgorithm returns the most frequent algorithm in the cluster.
func (s *ClusterStatistics) DominantAlgorithm() string {
	if len(s.TopAlgorithms) == 0 {
		return ""
	}
	return s.TopAlgorithms[0].Key
}

// DominantProofType returns the most frequent proof type in the cluster.
func (s *ClusterStatistics) DominantProofType() string {
	if len(s.TopProofTypes) == 0 {
		return ""
	}
	return s.TopProofTypes[0].Key
}

// HasMember reports whether a coin with the given name belongs to the cluster.
func (s *ClusterStatistics) HasMember(name string) bool {
	_, ok := s.Members[name]
	return ok
}

// HasAnyMember reports whether any of names belongs to the cluster.
func (s *ClusterStatistics) HasAnyMember(names ...string) bool {
	for _, n := range names {
		if s.HasMember(n) {
			return true
		}
	}
	return false
}

// HasTopAlgorithm reports whether algo is one of the cluster's top algorithms.
func (s *ClusterStatistics) HasTopAlgorithm(algo string) bool {
	for _, e := range s.TopAlgorithms {
		if e.Key == algo {
			return true
		}
	}
	return false
}
