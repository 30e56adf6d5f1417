package utils

import (
	"fmt"
	"math"
	"runtime"

	"github.com/dustin/go-humanize"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	return fmt.Sprintf("Alloc = %v TotalAlloc = %v Sys = %v NumGC = %v",
		humanize.IBytes(m.Alloc), humanize.IBytes(m.TotalAlloc), humanize.IBytes(m.Sys), m.NumGC)
}

// CountNonFinite counts NaN and Inf entries
func CountNonFinite(v []float64) (n int) {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			n++
		}
	}
	return
}
