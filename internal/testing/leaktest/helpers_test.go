package leaktest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestRun_NoLeak(t *testing.T) {
	Run(t, 0, func() {})
}

func TestCheck_WaitsForExitingGoroutines(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() {
		time.Sleep(50 * time.Millisecond)
	}()

	checker.Check(0)
}

func TestCheck_ToleranceAbsorbsKnownWorkers(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	Run(t, 1, func() {
		go func() { <-done }()
	})
}

func TestCheck_ReportsModuleStacks(t *testing.T) {
	rec := &recordingTB{TB: t}
	done := make(chan struct{})
	defer close(done)

	checker := NewGoroutineChecker(rec)
	go blockUntil(done)
	checker.Check(0)

	if assert.Len(t, rec.failures, 1) {
		assert.Contains(t, rec.failures[0], "goroutine leak")
		assert.Contains(t, rec.failures[0], "leaktest.blockUntil")
	}
}

func TestModuleStacks_ExcludesCaller(t *testing.T) {
	for _, stack := range ModuleStacks() {
		assert.NotContains(t, stack, "TestModuleStacks_ExcludesCaller")
	}
}

func blockUntil(done <-chan struct{}) {
	<-done
}
