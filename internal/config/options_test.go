package config

import "testing"

func TestDefaultIsConservative(t *testing.T) {
	o := Default()
	if o.JumpMode != JumpClean {
		t.Errorf("Default() JumpMode = %s, want %s", o.JumpMode, JumpClean)
	}
	if !o.FoldConstants || !o.Desugar || !o.Lint {
		t.Error("Default() should enable every correctness pass")
	}
	if o.PruneUnusedLocals || o.PruneUnusedGlobals || o.PruneUnusedFunctions || o.MangleNames {
		t.Error("Default() should not prune or mangle anything")
	}
	if o.MaxIterations != 8 {
		t.Errorf("Default() MaxIterations = %d, want 8", o.MaxIterations)
	}
}

func TestO1DisablesFolding(t *testing.T) {
	o := O1()
	if o.FoldConstants {
		t.Error("O1() should disable constant folding")
	}
	if o.PruneUnusedLocals || o.PruneUnusedGlobals || o.PruneUnusedFunctions {
		t.Error("O1() should not prune anything")
	}
}

func TestO2PrunesLocalsAndGlobalsOnly(t *testing.T) {
	o := O2()
	if !o.PruneUnusedLocals || !o.PruneUnusedGlobals {
		t.Error("O2() should prune unused locals and globals")
	}
	if o.PruneUnusedFunctions {
		t.Error("O2() should not prune unreferenced functions")
	}
	if o.MangleNames {
		t.Error("O2() should not mangle names")
	}
}

func TestO3PrunesEverythingAndMangles(t *testing.T) {
	o := O3()
	if !o.PruneUnusedLocals || !o.PruneUnusedGlobals || !o.PruneUnusedFunctions {
		t.Error("O3() should prune every unused-symbol category")
	}
	if !o.MangleNames {
		t.Error("O3() should enable name mangling")
	}
}

func TestParseFillsOmittedFieldsFromDefault(t *testing.T) {
	opts, err := Parse([]byte("fold_constants: false\n"))
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if opts.FoldConstants {
		t.Error("explicit fold_constants: false should be honored")
	}
	if opts.MaxIterations != 8 {
		t.Errorf("an omitted field should keep Default()'s value, got MaxIterations = %d", opts.MaxIterations)
	}
	if !opts.Lint {
		t.Error("an omitted lint field should keep Default()'s true value")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("not: [valid: yaml")); err == nil {
		t.Error("Parse should return an error for malformed YAML")
	}
}

func TestDumpRoundTrips(t *testing.T) {
	original := O2()
	data, err := Dump(original)
	if err != nil {
		t.Fatalf("Dump returned an error: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse of dumped config failed: %v", err)
	}
	if parsed.PruneUnusedLocals != original.PruneUnusedLocals || parsed.PruneUnusedGlobals != original.PruneUnusedGlobals {
		t.Error("dumping then parsing should round-trip the pruning flags")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/options.yaml"); err == nil {
		t.Error("Load should return an error for a missing file")
	}
}
