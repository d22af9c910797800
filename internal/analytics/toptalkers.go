package analytics

import (
	"sort"

	"FlowScope/internal/model"
)

// Role selects which endpoint of a flow a ranking is built over.
type Role string

const (
	RoleSrc Role = "src"
	RoleDst Role = "dst"
)

// DefaultTopN is the ranking size used when the caller does not specify one.
const DefaultTopN = 5

// TopTalkers ranks addresses by aggregated traffic volume. Each flow adds
// its pkt_count to its address's weight; a flow with a missing or zero
// pkt_count contributes 1, so an address sending only zero-sized packets is
// still visible. Addresses with equal weight keep first-encountered order.
func TopTalkers(flows []model.FlowRecord, role Role, n int) []model.AddressWeight {
	if n <= 0 {
		n = DefaultTopN
	}

	weights := make(map[string]uint64)
	var order []string
	for i := range flows {
		addr := address(&flows[i], role)
		if _, seen := weights[addr]; !seen {
			order = append(order, addr)
		}
		w := uint64(1)
		if flows[i].PktCount != nil && *flows[i].PktCount > 0 {
			w = *flows[i].PktCount
		}
		weights[addr] += w
	}

	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	if len(order) > n {
		order = order[:n]
	}
	ranked := make([]model.AddressWeight, 0, len(order))
	for _, addr := range order {
		ranked = append(ranked, model.AddressWeight{Address: addr, Weight: weights[addr]})
	}
	return ranked
}

// address returns the flow endpoint for the given role, defaulting missing
// values to "unknown" so they still participate in rankings and entropy.
func address(f *model.FlowRecord, role Role) string {
	var addr string
	if role == RoleDst {
		addr = f.Dst
	} else {
		addr = f.Src
	}
	if addr == "" {
		return "unknown"
	}
	return addr
}
