package app

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Profiler records wall time per named phase of a run.
type Profiler struct {
	mu     sync.Mutex
	scopes map[string]time.Duration
	starts map[string]time.Time
	counts map[string]int
	order  []string
}

func NewProfiler() *Profiler {
	return &Profiler{
		scopes: make(map[string]time.Duration),
		starts: make(map[string]time.Time),
		counts: make(map[string]int),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.starts[name] = time.Now()
	if !slices.Contains(p.order, name) {
		p.order = append(p.order, name)
	}
}

// EndScope adds the time since the matching BeginScope.
func (p *Profiler) EndScope(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if start, ok := p.starts[name]; ok {
		p.scopes[name] += time.Since(start)
		delete(p.starts, name)
	}
}

// Scope is BeginScope with a deferred EndScope:
//
//	defer p.Scope("render")()
func (p *Profiler) Scope(name string) func() {
	p.BeginScope(name)
	return func() { p.EndScope(name) }
}

func (p *Profiler) SetCount(name string, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[name] = count
}

func (p *Profiler) Duration(name string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scopes[name]
}

func (p *Profiler) Count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[name]
}

func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.scopes)
	clear(p.starts)
	clear(p.counts)
	p.order = p.order[:0]
}

// Lines formats timings in first-seen order, then counters by name.
func (p *Profiler) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	lines := make([]string, 0, len(p.order)+len(p.counts))
	for _, name := range p.order {
		ms := float64(p.scopes[name].Microseconds()) / 1000.0
		lines = append(lines, fmt.Sprintf("%-10s %8.2f ms", name, ms))
	}
	keys := make([]string, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-10s %8d", k, p.counts[k]))
	}
	return lines
}

func (p *Profiler) GetStatsString() string {
	return strings.Join(p.Lines(), "\n")
}
