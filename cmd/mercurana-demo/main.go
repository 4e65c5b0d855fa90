// Command mercurana-demo integrates a small fixed system (a star with
// two planets, one of them a passive test particle) for a user-chosen
// number of outer steps and prints the final body positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phil-mansfield/mercurana"
	mconfig "github.com/phil-mansfield/mercurana/config"
)

func main() {
	var (
		configPath string
		steps      int
		dt         float64
	)
	flag.StringVar(&configPath, "config", "", "path to an INI-style mercurana config file (optional)")
	flag.IntVar(&steps, "steps", 200, "number of outer Part1/Part2 steps to run")
	flag.Float64Var(&dt, "dt", 0.05, "outer step size")
	flag.Parse()

	cfg := mercurana.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = mconfig.Load(configPath)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	sim := &mercurana.Sim{
		G:       1,
		NActive: 2,
		Logger:  log.New(os.Stderr, "mercurana: ", 0),
		Bodies: []mercurana.Body{
			{Mass: 1, Pos: mercurana.Vec3{0, 0, 0}, Vel: mercurana.Vec3{0, 0, 0}},
			{Mass: 1e-3, Pos: mercurana.Vec3{1, 0, 0}, Vel: mercurana.Vec3{0, 1, 0}},
			{Mass: 0, Pos: mercurana.Vec3{2, 0, 0}, Vel: mercurana.Vec3{0, 0.7, 0}},
		},
	}

	ig := mercurana.NewIntegrator(cfg)
	for i := 0; i < steps; i++ {
		ig.Part1(sim, dt)
		ig.Part2(sim, dt)
	}
	ig.Synchronize(sim, dt)

	for i, b := range sim.Bodies {
		fmt.Printf("body %d: pos=%.6f vel=%.6f\n", i, b.Pos, b.Vel)
	}
	fmt.Printf("deepest shell used: %d\n", ig.MaxShellUsed())
}
