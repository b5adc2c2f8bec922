// This file is part of gba-sub000.
//
// gba-sub000 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gba-sub000 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Package benchmark drives the CPU for a fixed cycle budget and reports
// throughput and decode-cache effectiveness, backed by
// github.com/prometheus/client_golang for the counters and
// github.com/olekukonko/tablewriter + github.com/fatih/color for the
// human-readable report the `bench` CLI subcommand prints -- the spec's
// "benchmarking and logging" component (§2) given a concrete home instead
// of bare fmt.Println calls.
package benchmark

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harrowm/gba-sub000/internal/cpu"
)

// Metrics are the Prometheus counters this package registers. Callers that
// already run a Prometheus registry (e.g. an embedding application) can
// pass their own registerer to NewMetrics; the `bench` CLI subcommand uses
// a private one and never exposes an HTTP endpoint.
type Metrics struct {
	instructionsExecuted prometheus.Counter
	cyclesConsumed       prometheus.Counter
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	cacheInvalidations   prometheus.Counter
}

// NewMetrics registers this package's counters against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		instructionsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gba_core_instructions_total",
			Help: "Total instructions executed by the CPU step loop.",
		}),
		cyclesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gba_core_cycles_total",
			Help: "Total cycles consumed by the CPU step loop.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gba_core_decode_cache_hits_total",
			Help: "Decode cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gba_core_decode_cache_misses_total",
			Help: "Decode cache misses.",
		}),
		cacheInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gba_core_decode_cache_invalidations_total",
			Help: "Decode cache region invalidations.",
		}),
	}
	reg.MustRegister(
		m.instructionsExecuted,
		m.cyclesConsumed,
		m.cacheHits,
		m.cacheMisses,
		m.cacheInvalidations,
	)
	return m
}

// Result summarizes one benchmark run.
type Result struct {
	Cycles        uint64
	Instructions  uint64
	Elapsed       time.Duration
	CacheHits     uint64
	CacheMisses   uint64
	Invalidations uint64
}

// CyclesPerSecond reports the run's effective emulated clock rate.
func (r Result) CyclesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Cycles) / r.Elapsed.Seconds()
}

// Run steps c for at least cycleBudget cycles (in fixed-size slices so a
// misbehaving program can't starve the timer), recording metrics into m if
// non-nil. The last instruction may overrun the budget by a few cycles;
// Result.Cycles reports what was actually consumed.
func Run(c *cpu.CPU, cycleBudget uint64, m *Metrics) Result {
	const slice = 4096

	startInstructions := c.InstructionsExecuted()
	startHits, startMisses, startInvalidations := c.CacheStats()

	start := time.Now()
	var consumed uint64
	for consumed < cycleBudget {
		budget := uint64(slice)
		if remaining := cycleBudget - consumed; remaining < slice {
			budget = remaining
		}
		consumed += c.Step(budget)
	}
	elapsed := time.Since(start)

	instructions := c.InstructionsExecuted() - startInstructions
	hits, misses, invalidations := c.CacheStats()
	hits -= startHits
	misses -= startMisses
	invalidations -= startInvalidations
	if m != nil {
		m.instructionsExecuted.Add(float64(instructions))
		m.cyclesConsumed.Add(float64(consumed))
		m.cacheHits.Add(float64(hits))
		m.cacheMisses.Add(float64(misses))
		m.cacheInvalidations.Add(float64(invalidations))
	}

	return Result{
		Cycles:        consumed,
		Instructions:  instructions,
		Elapsed:       elapsed,
		CacheHits:     hits,
		CacheMisses:   misses,
		Invalidations: invalidations,
	}
}

// WriteReport renders r as a colorized table to w, the way the `bench`
// subcommand presents results to a terminal.
func WriteReport(w io.Writer, r Result) {
	bold := color.New(color.Bold).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"cycles consumed", fmt.Sprintf("%d", r.Cycles)})
	table.Append([]string{"instructions executed", fmt.Sprintf("%d", r.Instructions)})
	table.Append([]string{"elapsed", r.Elapsed.String()})
	table.Append([]string{bold("cycles/sec"), fmt.Sprintf("%.0f", r.CyclesPerSecond())})
	table.Append([]string{"cache hits", fmt.Sprintf("%d", r.CacheHits)})
	table.Append([]string{"cache misses", fmt.Sprintf("%d", r.CacheMisses)})
	table.Append([]string{"cache invalidations", fmt.Sprintf("%d", r.Invalidations)})
	table.Render()
}
