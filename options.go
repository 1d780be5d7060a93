package forth

import "io"

// Option configures a VM under construction.
type Option interface{ apply(vm *VM) }

var defaults = []Option{
	withOutput(nil),
	heapSizeOption(defaultHeapSize),
	precisionOption(defaultPrecision),
	baseOption(defaultBase),
	forwardRefsOption(true),
	promptOption{defaultPrompt, defaultContinuationPrompt},
	withExtensions(coreExtension),
}

func (vm *VM) apply(opts ...Option) {
	for _, opt := range defaults {
		opt.apply(vm)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// Options combines any number of options into one, skipping nils.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []Option

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

// WithOutput sets the stream that output words write to; the default
// discards output.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee adds another stream that receives a copy of all output.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf enables trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithHeapSize sets the number of heap cells, including the reserved
// base and precision cells.
func WithHeapSize(size int) Option { return heapSizeOption(size) }

// WithPrecision sets the initial number of fixed point fraction digits.
func WithPrecision(digits int) Option { return precisionOption(digits) }

// WithBase sets the initial numeric base.
func WithBase(base int) Option { return baseOption(base) }

// WithExtensions adds startup extensions, loaded in order after any
// already configured.
func WithExtensions(exts ...Extension) Option { return withExtensions(exts...) }

// WithoutCore drops all startup extensions configured so far, including the
// default core word set.
func WithoutCore() Option { return noExtensions{} }

// WithForwardRefs controls whether an unknown word inside a definition
// compiles as a reference to be resolved when called (the default), or is
// a compilation error.
func WithForwardRefs(allow bool) Option { return forwardRefsOption(allow) }

// WithPrompt sets the interactive prompts written when more input is
// needed: primary at top level, continuation inside a definition.
func WithPrompt(primary, continuation string) Option {
	return promptOption{primary, continuation}
}

type withLogfn func(mess string, args ...interface{})
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type heapSizeOption int
type precisionOption int
type baseOption int
type forwardRefsOption bool
type promptOption struct{ primary, continuation string }
type extensionsOption []Extension
type noExtensions struct{}

func withOutput(w io.Writer) outputOption               { return outputOption{w} }
func withExtensions(exts ...Extension) extensionsOption { return extensionsOption(exts) }

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

func (o outputOption) apply(vm *VM) { vm.out.SetPrimary(o.Writer) }
func (o teeOption) apply(vm *VM)    { vm.out.AddTee(o.Writer) }

func (size heapSizeOption) apply(vm *VM)     { vm.heapSize = int(size) }
func (digits precisionOption) apply(vm *VM)  { vm.startPrecision = int(digits) }
func (base baseOption) apply(vm *VM)         { vm.startBase = int(base) }
func (allow forwardRefsOption) apply(vm *VM) { vm.forwardRefs = bool(allow) }
func (exts extensionsOption) apply(vm *VM)   { vm.extensions = append(vm.extensions, exts...) }
func (noExtensions) apply(vm *VM)            { vm.extensions = nil }

func (p promptOption) apply(vm *VM) {
	vm.prompt = p.primary
	vm.contPrompt = p.continuation
}
