package compiler

// Processor is one stage of the compilation pipeline: a symbol
// resolution pass, a typechecker, a folding pass, and so on. Process may
// mutate ctx in place and returns it (or a fresh one, though in
// practice every implementation in this module mutates and returns the
// same pointer) so a Pipeline can chain stages uniformly.
type Processor interface {
	Process(ctx *CompileContext) *CompileContext
}

// Pipeline runs a fixed sequence of Processors over one CompileContext.
// It never stops early on error: later stages need to see whatever
// partial state earlier stages produced so a single compile reports as
// many diagnostics as possible.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline that runs processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order against ctx.
func (p *Pipeline) Run(ctx *CompileContext) *CompileContext {
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// ProcessorFunc adapts a plain function to a Processor.
type ProcessorFunc func(ctx *CompileContext) *CompileContext

func (f ProcessorFunc) Process(ctx *CompileContext) *CompileContext { return f(ctx) }
