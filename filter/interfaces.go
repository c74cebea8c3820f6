package filter

// Record is one decoded result item, e.g. a movie from a list response.
type Record = map[string]any

// Filter matches records against a compiled expression
type Filter interface {
	// Match reports whether the record satisfies the expression
	Match(record Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (Filter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
