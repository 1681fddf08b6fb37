// ufgen synthesizes workload files for benchmarking Union-Find
// implementations.
package main

import (
	"github.com/ufbench/ufgen/ufgen/cmd"
)

func main() {
	cmd.Execute()
}
