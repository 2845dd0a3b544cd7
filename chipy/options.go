package chipy

// Option configures an Interpreter at construction, the same functional-
// options idiom the teacher uses for thread/file configuration.
type Option func(*config)

type config struct {
	arenaSize     int
	maxStatements int
	modules       map[string]Module
	printSink     func(string)
}

// WithArenaSize sets the arena's initial region size in bytes (default
// memory.DefaultSize, matching the original's fixed PAGE_SIZE). The
// original MemoryManager takes no size argument at all; WithArenaSize is a
// chipy-side addition letting a host tighten or loosen the byte budget
// per run instead of inheriting one hardcoded constant.
func WithArenaSize(n int) Option {
	return func(c *config) { c.arenaSize = n }
}

// WithModule pre-registers a host module under name, available to
// `import`/`from ... import`; it fills the same registry SetModule does.
func WithModule(name string, m Module) Option {
	return func(c *config) {
		if c.modules == nil {
			c.modules = make(map[string]Module)
		}
		c.modules[name] = m
	}
}

// WithMaxStatements bounds the number of statements an Execute call will
// run before failing, guarding a host against a runaway or adversarial
// script — ambient resource hygiene analogous to the teacher's
// Thread.SetMaxSteps, even though spec.md's non-goals exclude a full
// safety-accounting framework. Zero (the default) means unbounded.
func WithMaxStatements(n int) Option {
	return func(c *config) { c.maxStatements = n }
}

// WithPrintSink overrides where the `print` builtin writes; the default
// is os.Stdout, one line per call.
func WithPrintSink(fn func(string)) Option {
	return func(c *config) { c.printSink = fn }
}
