package topology

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a topology from a parameter record.
type Constructor func(Params) Topology

// Info describes a registered topology for discovery endpoints.
type Info struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PowerRange string   `json:"power_range"`
	Features   []string `json:"features"`
	Status     Status   `json:"status"`
}

// Registry maps topology identifiers to constructors. It is built explicitly
// by the caller (no package-level registration at import time) so lookup
// never depends on initialization order.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	infos        map[string]Info
}

// NewRegistry returns a registry populated with the built-in topologies.
func NewRegistry() *Registry {
	r := &Registry{
		constructors: make(map[string]Constructor),
		infos:        make(map[string]Info),
	}

	r.Register(Info{
		ID:         "dab_single",
		Name:       "Single-Phase Dual Active Bridge",
		PowerRange: "100W - 10kW",
		Features:   []string{"Bidirectional", "Galvanic isolation", "ZVS capable"},
		Status:     StatusFull,
	}, func(p Params) Topology { return NewDABSinglePhase(p) })

	r.Register(Info{
		ID:         "dab_threephase",
		Name:       "Three-Phase Dual Active Bridge",
		PowerRange: "10kW - 100kW",
		Features:   []string{"Higher power density", "Lower ripple", "Bidirectional"},
		Status:     StatusFull,
	}, func(p Params) Topology { return NewDABThreePhase(p) })

	r.Register(Info{
		ID:         "sst_mmc",
		Name:       "Solid-State Transformer with MMC",
		PowerRange: "100kW - 10MW",
		Features:   []string{"High voltage", "Modular", "Low THD"},
		Status:     StatusEstimate,
	}, func(p Params) Topology { return NewSSTMMC(p) })

	r.Register(Info{
		ID:         "sst_chb",
		Name:       "Solid-State Transformer with CHB",
		PowerRange: "100kW - 10MW",
		Features:   []string{"Multi-level", "Low THD", "Medium voltage"},
		Status:     StatusEstimate,
	}, func(p Params) Topology { return NewSSTCHB(p) })

	return r
}

// Register adds (or replaces) a topology constructor under info.ID.
func (r *Registry) Register(info Info, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[info.ID] = c
	r.infos[info.ID] = info
}

// Get returns the constructor for an identifier. Unknown identifiers yield
// an error wrapping ErrNotRegistered.
func (r *Registry) Get(id string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.constructors[id]
	if !ok {
		return nil, fmt.Errorf("topology %q: %w", id, ErrNotRegistered)
	}
	return c, nil
}

// Create instantiates a topology by identifier.
func (r *Registry) Create(id string, p Params) (Topology, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return c(p), nil
}

// List returns metadata for all registered topologies, sorted by identifier.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.infos))
	for _, info := range r.infos {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(a, b int) bool { return infos[a].ID < infos[b].ID })
	return infos
}
