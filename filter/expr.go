package filter

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"
)

// dateLayout is the date format TMDB uses for release and air dates.
const dateLayout = "2006-01-02"

// exprFilter implements Filter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[Filter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 32),
	}
	addHelperFunctions(c.helperFuncs)
	addRecordFunctions(c.helperFuncs, nil)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[Filter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are only known at run time.
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		cerr := &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
		var ferr *file.Error
		if errors.As(err, &ferr) {
			cerr.Reason = ferr.Message
			cerr.Position = ferr.Column
		}
		return nil, cerr
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter against a record. Fields missing from the
// record evaluate to nil.
func (f *exprFilter) Match(record Record) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(record, f.helpers))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			RecordID:   record["id"],
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			RecordID:   record["id"],
			Reason:     "expression did not evaluate to a boolean",
		}
	}
	return matched, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the record-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = parseDate
	env["year"] = func(date string) int {
		return parseDate(date).Year()
	}
	// String helpers. contains, startsWith and endsWith are expr operators,
	// so the case-insensitive variants use their own names.
	env["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

// addRecordFunctions adds helpers bound to one record. A nil record yields
// helpers with the right signatures for compilation.
func addRecordFunctions(env map[string]any, record Record) {
	genres := genreIDs(record)
	released := releaseDate(record)

	env["hasGenre"] = func(id int) bool {
		return slices.Contains(genres, id)
	}
	env["releasedAfter"] = func(t time.Time) bool {
		return !released.IsZero() && released.After(t)
	}
	env["releasedBefore"] = func(t time.Time) bool {
		return !released.IsZero() && released.Before(t)
	}
	env["displayTitle"] = displayTitle(record)
}

// createRuntimeEnvironment exposes the record's fields as top-level
// variables, the whole record as item, the compiler's helpers (custom ones
// included) and the helpers bound to record.
func createRuntimeEnvironment(record Record, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+1)
	maps.Copy(env, record)
	env["item"] = record

	maps.Copy(env, helpers)
	addRecordFunctions(env, record)
	return env
}

func parseDate(date string) time.Time {
	t, _ := time.Parse(dateLayout, date)
	return t
}

// releaseDate returns release_date for movies or first_air_date for series.
func releaseDate(record Record) time.Time {
	for _, key := range []string{"release_date", "first_air_date"} {
		if s := cast.ToString(record[key]); s != "" {
			return parseDate(s)
		}
	}
	return time.Time{}
}

// displayTitle returns title for movies and name for series and people.
func displayTitle(record Record) string {
	if s := cast.ToString(record["title"]); s != "" {
		return s
	}
	return cast.ToString(record["name"])
}

func genreIDs(record Record) []int {
	ids := cast.ToSlice(record["genre_ids"])
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if n, err := cast.ToIntE(id); err == nil {
			out = append(out, n)
		}
	}
	return out
}
