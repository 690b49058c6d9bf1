// Package main provides the ltensor CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ltensor/ltensor/backend/incore"
	"github.com/ltensor/ltensor/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("ltensor %s\n", version)
			return
		case "bench":
			runBench()
			return
		}
	}

	fmt.Println("ltensor - labeled-index tensor contraction")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  bench      Run a fixed contraction and report timing")
}

// runBench contracts two square in-core matrices under a fixed equation and
// reports elapsed time, exercising the same code path as the package doc
// example.
func runBench() {
	const n = 256

	tensor.Init(0, nil)
	defer tensor.Finalize()

	be := incore.New()
	a, err := tensor.Build(be, "A", tensor.Shape{n, n})
	if err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}
	b, err := tensor.Build(be, "B", tensor.Shape{n, n})
	if err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}
	c, err := tensor.Build(be, "C", tensor.Shape{n, n})
	if err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}

	bufA, _ := a.Buffer()
	bufB, _ := b.Buffer()
	for i := range bufA {
		bufA[i] = float64(i%7) - 3
		bufB[i] = float64(i%5) - 2
	}

	start := time.Now()
	if err := c.L("ij").Assign(a.L("ik").Mul(b.L("kj"))); err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	flops := 2.0 * n * n * n
	fmt.Printf("ltensor bench: %dx%d matmul in %s (%.2f GFLOP/s)\n", n, n, elapsed, flops/elapsed.Seconds()/1e9)
}
