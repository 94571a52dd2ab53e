// Command tailslide is a thin demonstration front end over the
// optimizer driver. It owns none of the external collaborators this
// module leaves out (lexer, parser, pretty-printer, bytecode
// emitter): it only wires a compiler.Parser/compiler.Emitter pair, once
// a caller's build supplies them, through NewCompileContext and
// optimizer.Driver. Run without a registered Parser it can still dump
// the optimizer option presets, which is useful on its own for
// generating a starting options.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/config"
	"github.com/tailslide/tailslide-go/internal/optimizer"
)

// registeredParser and registeredEmitter are nil in this module: a host
// binary that links a concrete lexer/parser and bytecode emitter sets
// these (or simply builds its own main using package compiler directly)
// to get an end-to-end compile. Left nil, runFile reports that no
// front/back end is wired rather than guessing at one.
var (
	registeredParser  compiler.Parser
	registeredEmitter compiler.Emitter
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	switch args[0] {
	case "-help", "--help", "help":
		printUsage()
	case "-dump-config", "--dump-config":
		preset := "default"
		if len(args) > 1 {
			preset = args[1]
		}
		if err := dumpConfig(preset); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	default:
		runFile(args[0], args[1:])
	}
}

func printUsage() {
	fmt.Println("tailslide - symbol resolution, type checking, constant folding,")
	fmt.Println("desugaring, and tree optimization for scripts (no lexer/parser/")
	fmt.Println("bytecode emitter bundled; link one via the compiler.Parser/")
	fmt.Println("compiler.Emitter interfaces).")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tailslide -dump-config [default|o1|o2|o3]   print an options.yaml")
	fmt.Println("  tailslide <file> [-options <path>]          compile a script")
}

func dumpConfig(preset string) error {
	var opts *config.OptimizerOptions
	switch preset {
	case "default", "":
		opts = config.Default()
	case "o1":
		opts = config.O1()
	case "o2":
		opts = config.O2()
	case "o3":
		opts = config.O3()
	default:
		return fmt.Errorf("unknown preset %q (want default, o1, o2, or o3)", preset)
	}
	data, err := config.Dump(opts)
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	return nil
}

func runFile(path string, rest []string) {
	if registeredParser == nil || registeredEmitter == nil {
		fmt.Fprintf(os.Stderr,
			"tailslide: no parser/emitter linked into this build; this module only "+
				"implements symbol resolution through tree optimization (compiler.Parser "+
				"and compiler.Emitter are the seams a host binary fills in)\n")
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tailslide: %s\n", err)
		os.Exit(1)
	}

	opts, err := optionsFromArgs(rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tailslide: %s\n", err)
		os.Exit(1)
	}

	ctx := compiler.NewCompileContext(path, string(source))
	ctx.Options = opts

	script, err := registeredParser.Parse(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tailslide: parse error: %s\n", err)
		os.Exit(1)
	}
	ctx.Script = script

	optimizer.NewDriver().Run(ctx)

	if err := ctx.Diagnostics.ApplyAssertions(ctx.Source); err != nil {
		fmt.Fprintf(os.Stderr, "tailslide: %s\n", err)
		os.Exit(1)
	}

	for _, d := range ctx.Diagnostics.All() {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if ctx.HasErrors() {
		os.Exit(1)
	}

	out, err := registeredEmitter.Emit(ctx, ctx.Script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tailslide: emit error: %s\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func optionsFromArgs(args []string) (*config.OptimizerOptions, error) {
	for i, a := range args {
		if a == "-options" && i+1 < len(args) {
			return config.Load(args[i+1])
		}
	}
	return config.Default(), nil
}
