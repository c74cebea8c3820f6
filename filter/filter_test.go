package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{"id": float64(278), "title": "The Shawshank Redemption", "release_date": "1994-09-23", "vote_average": 8.7, "genre_ids": []any{float64(18), float64(80)}, "adult": false},
		{"id": float64(550), "title": "Fight Club", "release_date": "1999-10-15", "vote_average": 8.4, "genre_ids": []any{float64(18)}, "adult": false},
		{"id": float64(1399), "name": "Game of Thrones", "first_air_date": "2011-04-17", "vote_average": 8.5, "genre_ids": []any{float64(10765), float64(18)}},
		{"id": float64(19404), "title": "Dilwale Dulhania Le Jayenge", "release_date": "1995-10-20", "vote_average": 8.6, "genre_ids": []any{float64(35), float64(18), float64(10749)}},
	}
}

func ids(records []Record) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r["id"].(float64))
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "field comparison", expression: `vote_average > 8.5`},
		{name: "helper call", expression: `hasGenre(18) and year(release_date) < 2000`},
		{name: "date helpers", expression: `releasedAfter(parseDate("1995-01-01")) and daysSince(parseDate(release_date)) > 365`},
		{name: "empty expression", expression: "   ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `hasText(title, "unclosed`, wantErr: true},
		{name: "non boolean", expression: `1 + 2`, wantErr: true},
		{name: "wrong helper argument", expression: `hasGenre("drama")`, wantErr: true},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *CompilationError
				assert.True(t, errors.As(err, &cerr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []float64
	}{
		{name: "rating", expression: `vote_average >= 8.6`, want: []float64{278, 19404}},
		{name: "genre", expression: `hasGenre(35)`, want: []float64{19404}},
		{name: "title helper covers series", expression: `hasPrefix(displayTitle, "game")`, want: []float64{1399}},
		{name: "release date covers first air date", expression: `releasedAfter(parseDate("2000-01-01"))`, want: []float64{1399}},
		{name: "year of release", expression: `year(release_date) == 1999`, want: []float64{550}},
		{name: "whole record", expression: `item.adult == false`, want: []float64{278, 550}},
		{name: "case insensitive contains", expression: `hasText(displayTitle, "CLUB")`, want: []float64{550}},
		{name: "case insensitive suffix", expression: `hasSuffix(displayTitle, "JAYENGE")`, want: []float64{19404}},
		{name: "string operator", expression: `displayTitle endsWith "Club" or displayTitle contains "Thrones"`, want: []float64{550, 1399}},
		{name: "older than", expression: `releasedBefore(yearsAgo(20))`, want: []float64{278, 550, 19404}},
	}

	compiler := NewExprCompiler()
	m := NewManager(WithCompiler(compiler))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := m.Apply(context.Background(), f, sampleRecords())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatch_EvaluationError(t *testing.T) {
	f, err := NewExprCompiler().Compile(`item.missing.field == 1`)
	require.NoError(t, err)

	ok, err := f.Match(Record{"id": float64(1)})
	assert.False(t, ok)
	var eerr *EvaluationError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, float64(1), eerr.RecordID)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`vote_average > 5`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  vote_average > 5  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`vote_average > 6`)
	require.NoError(t, err)
	_, err = compiler.Compile(`vote_average > 7`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestWithCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(date string) bool { return parseDate(date).Before(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)) },
	}))

	f, err := compiler.Compile(`isClassic(release_date)`)
	require.NoError(t, err)

	ok, err := f.Match(Record{"release_date": "1972-03-14"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(Record{"release_date": "1999-10-15"})
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("through manager", func(t *testing.T) {
		m := NewManager(WithCompiler(compiler))
		require.NoError(t, m.RegisterFilters(map[string]string{"classics": `isClassic(release_date) or hasGenre(35)`}))

		f, err := m.Resolve("classics")
		require.NoError(t, err)
		records := []Record{
			{"id": float64(238), "release_date": "1972-03-14"},
			{"id": float64(550), "release_date": "1999-10-15"},
			{"id": float64(19404), "release_date": "1995-10-20", "genre_ids": []any{float64(35)}},
		}
		got, err := m.Apply(context.Background(), f, records)
		require.NoError(t, err)
		assert.Equal(t, []float64{238, 19404}, ids(got))
	})
}

func TestManager(t *testing.T) {
	m := NewManager()

	err := m.RegisterFilters(map[string]string{
		"classics": `year(release_date) < 1996`,
		"highly":   `vote_average > 8.5`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"classics", "highly"}, m.ListFilters())

	t.Run("named filter", func(t *testing.T) {
		f, err := m.Resolve("classics")
		require.NoError(t, err)
		got, err := m.Apply(context.Background(), f, sampleRecords())
		require.NoError(t, err)
		assert.Equal(t, []float64{278, 19404}, ids(got))
	})

	t.Run("ad-hoc expression", func(t *testing.T) {
		f, err := m.Resolve(`hasGenre(10765)`)
		require.NoError(t, err)
		got, err := m.Apply(context.Background(), f, sampleRecords())
		require.NoError(t, err)
		assert.Equal(t, []float64{1399}, ids(got))
	})

	t.Run("invalid filters are not registered", func(t *testing.T) {
		err := m.RegisterFilters(map[string]string{"broken": `vote_average >`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile filter 'broken'")
		_, ok := m.GetFilter("broken")
		assert.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		f, _ := m.GetFilter("highly")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := m.Apply(ctx, f, sampleRecords())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used.
	c.Put("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Size())
}
