// Package config is the compiler options contract: which
// optimizer passes run, how many driver iterations are allowed, and
// jump-fixup semantics, loaded from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JumpMode selects how forward/backward jump targets across scope
// boundaries are resolved.
type JumpMode string

const (
	// JumpClean requires a jump's target label to be visible from the
	// jump statement's own scope (no reaching into a sibling block).
	JumpClean JumpMode = "clean"
	// JumpLegacy matches the historical virtual-machine behavior: a jump
	// still needs a lexically visible label of its name, but it lands on
	// the last label with that name declared anywhere in the enclosing
	// body, crossing nested scopes.
	JumpLegacy JumpMode = "legacy"
)

// OptimizerOptions controls which optimizer passes the Driver runs and
// how they behave. Zero value is not valid; use Default or a preset.
type OptimizerOptions struct {
	// JumpMode selects clean vs legacy jump-target resolution.
	JumpMode JumpMode `yaml:"jump_mode"`

	// FoldConstants enables constant propagation/folding.
	FoldConstants bool `yaml:"fold_constants"`
	// Desugar enables the desugaring pass. Disabling this
	// is only meaningful for tooling that wants to inspect the
	// pre-desugared tree; the emitter contract assumes desugared input.
	Desugar bool `yaml:"desugar"`
	// Lint enables the unused-variable/unused-function warnings.
	// Disabling it suppresses only those; the lint pass's other
	// warnings and warnings raised by other passes are unaffected, and
	// reference/assignment counting still runs, since pruning depends
	// on it.
	Lint bool `yaml:"lint"`
	// PruneUnusedLocals/Globals/Functions independently gate which
	// reference-counted categories the driver's prune step removes:
	// a local with zero references, an unreferenced
	// global variable, an uncalled function.
	PruneUnusedLocals    bool `yaml:"prune_unused_locals"`
	PruneUnusedGlobals   bool `yaml:"prune_unused_globals"`
	PruneUnusedFunctions bool `yaml:"prune_unused_functions"`
	// MangleNames replaces kept identifiers with short generated names.
	// Typically paired with pruning.
	MangleNames bool `yaml:"mangle_names"`

	// MaxIterations bounds how many resolve->typecheck->fold->desugar->
	// lint rounds the Driver runs before giving up on reaching a fixed
	// point.
	MaxIterations int `yaml:"max_iterations"`
}

// Default returns the conservative option set: every correctness pass
// on, no pruning or mangling, clean jump semantics.
func Default() *OptimizerOptions {
	return &OptimizerOptions{
		JumpMode:      JumpClean,
		FoldConstants: true,
		Desugar:       true,
		Lint:          true,
		MaxIterations: 8,
	}
}

// O1 is the minimal-optimization preset: correctness passes only, no
// folding beyond what desugaring needs, no pruning.
func O1() *OptimizerOptions {
	o := Default()
	o.FoldConstants = false
	return o
}

// O2 is the balanced preset: folding and pruning of locals/globals, no
// function pruning or name mangling (a pruned-but-uncalled function
// might still be part of a published API other scripts expect).
func O2() *OptimizerOptions {
	o := Default()
	o.PruneUnusedLocals = true
	o.PruneUnusedGlobals = true
	return o
}

// O3 is the aggressive preset: every pruning category plus mangling,
// on top of O2's folding. Jump semantics stay clean, same as every
// other preset; legacy semantics are an explicit opt-in via JumpMode,
// not implied by aggressiveness.
func O3() *OptimizerOptions {
	o := Default()
	o.PruneUnusedLocals = true
	o.PruneUnusedGlobals = true
	o.PruneUnusedFunctions = true
	o.MangleNames = true
	return o
}

// Load reads and parses a YAML options file.
func Load(path string) (*OptimizerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML option content from bytes, filling any field the
// document omits from Default.
func Parse(data []byte) (*OptimizerOptions, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing options: %w", err)
	}
	return opts, nil
}

// Dump renders opts back to YAML, e.g. for a `--dump-config` flag on the
// surrounding CLI.
func Dump(opts *OptimizerOptions) ([]byte, error) {
	return yaml.Marshal(opts)
}
