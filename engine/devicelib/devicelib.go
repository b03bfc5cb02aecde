// Package devicelib holds reduced power-semiconductor parameter records and
// resolves device names into the flat parameter sets the simulation engine
// consumes. The engine never characterizes devices itself; everything here
// is already-reduced datasheet data.
package devicelib

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/voltforge/simengine/engine/topology"
)

// ErrDeviceNotFound reports a lookup for a name absent from the library.
// Absence is always an error, never a silent default.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceSpec is the full reduced record for one power semiconductor.
type DeviceSpec struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Technology   string  `json:"technology"` // Si, SiC, GaN
	VdsMax       float64 `json:"vds_max"`
	IdMax        float64 `json:"id_max"`
	RdsOn25C     float64 `json:"rds_on_25c"`
	RdsOn125C    float64 `json:"rds_on_125c"`
	QgTotal      float64 `json:"qg_total"`
	Eon          float64 `json:"eon"`
	Eoff         float64 `json:"eoff"`
	VfDiode      float64 `json:"vf_diode"`
	Trr          float64 `json:"trr"`
	Qrr          float64 `json:"qrr"`
	TjMax        float64 `json:"tj_max"`
	RthJC        float64 `json:"rth_jc"`
	RthJA        float64 `json:"rth_ja"`
	Coss         float64 `json:"coss"`
	Package      string  `json:"package"`
}

// Filter narrows a Search.
type Filter struct {
	Technology   string
	VdsMin       float64
	IdMin        float64
	RdsOnMax     float64
	Manufacturer string
}

// Library is an in-memory device catalog. Safe for concurrent lookups.
type Library struct {
	mu      sync.RWMutex
	devices map[string]DeviceSpec
}

// New returns a library seeded with the builtin device set.
func New() *Library {
	l := &Library{devices: make(map[string]DeviceSpec)}
	for _, d := range builtinDevices {
		l.devices[d.Name] = d
	}
	return l
}

// Add inserts or replaces a device record.
func (l *Library) Add(d DeviceSpec) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.devices[d.Name] = d
}

// Get returns the record for a device name.
func (l *Library) Get(name string) (DeviceSpec, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.devices[name]
	if !ok {
		return DeviceSpec{}, fmt.Errorf("device %q: %w", name, ErrDeviceNotFound)
	}
	return d, nil
}

// Params resolves a device name into the flat parameter record the engine
// consumes.
func (l *Library) Params(name string) (topology.DeviceParams, error) {
	d, err := l.Get(name)
	if err != nil {
		return topology.DeviceParams{}, err
	}
	return topology.DeviceParams{
		RdsOn25C:  d.RdsOn25C,
		RdsOn125C: d.RdsOn125C,
		Eon:       d.Eon,
		Eoff:      d.Eoff,
		Qg:        d.QgTotal,
		Vf:        d.VfDiode,
		Trr:       d.Trr,
		Qrr:       d.Qrr,
		TjMax:     d.TjMax,
		RthJC:     d.RthJC,
		RthCA:     d.RthJA - d.RthJC,
		Coss:      d.Coss,
	}, nil
}

// Search returns devices matching every set criterion, sorted by name.
func (l *Library) Search(f Filter) []DeviceSpec {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []DeviceSpec
	for _, d := range l.devices {
		if f.Technology != "" && d.Technology != f.Technology {
			continue
		}
		if f.VdsMin > 0 && d.VdsMax < f.VdsMin {
			continue
		}
		if f.IdMin > 0 && d.IdMax < f.IdMin {
			continue
		}
		if f.RdsOnMax > 0 && d.RdsOn25C > f.RdsOnMax {
			continue
		}
		if f.Manufacturer != "" && !strings.EqualFold(d.Manufacturer, f.Manufacturer) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Recommend returns up to ten devices suitable for the given voltage and
// current stress after derating, ranked by on-resistance and rating fit.
func (l *Library) Recommend(vStress, iStress float64, technology string, derating float64) []DeviceSpec {
	if derating <= 0 || derating > 1 {
		derating = 0.8
	}
	vdsRequired := vStress / derating
	idRequired := iStress / derating

	candidates := l.Search(Filter{Technology: technology, VdsMin: vdsRequired, IdMin: idRequired})

	type scored struct {
		score  float64
		device DeviceSpec
	}
	ranked := make([]scored, 0, len(candidates))
	for _, d := range candidates {
		score := d.RdsOn25C*1000 +
			abs(d.VdsMax-vdsRequired)/100 +
			abs(d.IdMax-idRequired)/10
		ranked = append(ranked, scored{score, d})
	}
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].score < ranked[b].score })

	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	out := make([]DeviceSpec, len(ranked))
	for i, s := range ranked {
		out[i] = s.device
	}
	return out
}

// Names lists all device names, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.devices))
	for n := range l.devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
