// Package debug gates trace output on TREEDOC_DEBUG_* environment
// variables so evaluation internals can be inspected without a
// debugger.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Query bool
	Patch bool
	Op    bool
	Diff  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Query = boolEnv("TREEDOC_DEBUG_QUERY")
	d.Patch = boolEnv("TREEDOC_DEBUG_PATCH")
	d.Op = boolEnv("TREEDOC_DEBUG_OP")
	d.Diff = boolEnv("TREEDOC_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Query() bool {
	return d.Query
}
func Patch() bool {
	return d.Patch
}
func Op() bool {
	return d.Op
}
func Diff() bool {
	return d.Diff
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
