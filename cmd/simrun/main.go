// Command simrun runs one simulation or ZVS boundary sweep from the command
// line and prints the result as JSON. It is the offline counterpart of the
// NATS worker, useful for scripting and sanity checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/voltforge/simengine/engine/devicelib"
	"github.com/voltforge/simengine/engine/topology"
	"github.com/voltforge/simengine/engine/zvs"
)

func main() {
	topo := flag.String("topology", "dab_single", "topology identifier")
	vin := flag.Float64("vin", 400, "input voltage (V)")
	vout := flag.Float64("vout", 400, "output voltage (V)")
	power := flag.Float64("power", 10e3, "rated power (W)")
	fsw := flag.Float64("fsw", 100e3, "switching frequency (Hz)")
	llk := flag.Float64("llk", 10e-6, "leakage inductance (H)")
	turns := flag.Float64("n", 1, "transformer turns ratio")
	phi := flag.Float64("phi", 15, "phase shift (deg)")
	deadtime := flag.Float64("deadtime", 100e-9, "deadtime (s)")
	device := flag.String("device", "", "device name from the library (default generic SiC)")
	deviceCSV := flag.String("device-csv", "", "extra device records to load")
	coss := flag.Float64("coss", 120e-12, "switch output capacitance for boundary sweep (F)")
	modules := flag.Int("modules", 0, "MMC submodules per arm")
	cells := flag.Int("cells", 0, "CHB cells per phase")

	list := flag.Bool("list", false, "list topologies and devices, then exit")
	boundary := flag.Bool("boundary", false, "run a ZVS boundary sweep instead of a simulation")
	gridPoints := flag.Int("grid", 50, "boundary sweep grid resolution")
	targetPower := flag.Float64("target-power", 0, "also search the optimal phase shift for this power (W)")
	flag.Parse()

	registry := topology.NewRegistry()
	library := devicelib.New()
	if *deviceCSV != "" {
		if err := library.LoadCSV(*deviceCSV); err != nil {
			log.Fatalf("load device csv: %v", err)
		}
	}

	if *list {
		printJSON(map[string]any{
			"topologies": registry.List(),
			"devices":    library.Names(),
		})
		return
	}

	if *boundary {
		cfg := zvs.BoundaryConfig{
			Vin: *vin, Vout: *vout, N: *turns,
			Llk: *llk, Fsw: *fsw, Coss: *coss, Deadtime: *deadtime,
			GridPoints: *gridPoints,
		}
		m := zvs.Boundary(cfg)
		out := map[string]any{
			"boundary": m,
			"coverage": zvs.ExtractCoverage(m),
		}
		if *targetPower > 0 {
			out["optimal"] = zvs.FindOptimalPoint(cfg, *targetPower)
		}
		printJSON(out)
		return
	}

	params := topology.Params{
		Vin: *vin, Vout: *vout, Power: *power, Fsw: *fsw,
		Llk: *llk, TurnsRatio: *turns, PhiDeg: *phi, Deadtime: *deadtime,
		NumModules: *modules, NumCells: *cells,
	}

	top, err := registry.Create(*topo, params)
	if err != nil {
		log.Fatalf("create topology: %v", err)
	}

	dev := topology.DefaultDeviceParams()
	if *device != "" {
		dev, err = library.Params(*device)
		if err != nil {
			log.Fatalf("resolve device: %v", err)
		}
	}

	result := topology.Simulate(top, dev)
	printJSON(result)
	if !result.Success {
		os.Exit(1)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(data))
}
