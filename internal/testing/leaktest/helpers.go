package leaktest

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond

	// Frames from this module identify goroutines worth reporting.
	modulePrefix = "github.com/osse101/SpiritSummon_Go/"
)

// GoroutineChecker compares the goroutine count against a baseline taken at creation.
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check waits up to two seconds for the count to fall within tolerance of the
// baseline. On failure it reports the stacks of goroutines running module code.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before + tolerance)
	if after <= g.before+tolerance {
		return
	}
	g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s",
		g.before, after, tolerance, strings.Join(ModuleStacks(), "\n\n"))
}

// Run fails t if fn leaves more than tolerance goroutines behind
func Run(t testing.TB, tolerance int, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(tolerance)
}

func settle(target int) int {
	deadline := time.Now().Add(settleTimeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}

// ModuleStacks returns the stack of every live goroutine that has a frame in this module.
func ModuleStacks() []string {
	buf := make([]byte, 1<<20)
	buf = buf[:runtime.Stack(buf, true)]

	var out []string
	for _, stack := range bytes.Split(buf, []byte("\n\n")) {
		if bytes.Contains(stack, []byte(modulePrefix)) && !bytes.Contains(stack, []byte("leaktest.ModuleStacks")) {
			out = append(out, string(stack))
		}
	}
	return out
}
