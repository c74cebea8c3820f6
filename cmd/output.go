package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/tmdbctl/filter"
	"github.com/s0up4200/tmdbctl/tmdb"
	"github.com/s0up4200/tmdbctl/transport"
)

// requestFlags are shared by every resource command.
type requestFlags struct {
	params []string
	filter string
	pretty bool
}

func (f *requestFlags) register(cmd *cobra.Command, withParams bool) {
	if withParams {
		cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "query parameter as key=value (repeatable)")
	}
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "filter name from config or expression applied to results")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "indent JSON output")
}

// parseParams turns key=value pairs into query parameters. Repeated keys
// become a list, which the transport joins with commas.
func parseParams(pairs []string) (tmdb.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(tmdb.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}

		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}

// parseIDs parses positional numeric identifiers.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchAll runs fetch for every id with at most limit requests in flight and
// returns the responses in id order. The first failure cancels the rest.
func fetchAll(ctx context.Context, ids []int, limit int, fetch func(ctx context.Context, id int) (*transport.Response, error)) ([]*transport.Response, error) {
	responses := make([]*transport.Response, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, id := range ids {
		g.Go(func() error {
			resp, err := fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("id %d: %w", id, err)
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// render writes one response body, filtered and indented as requested.
func (a *app) render(ctx context.Context, w io.Writer, flags *requestFlags, resp *transport.Response) error {
	body := resp.Body

	if flags.filter != "" {
		f, err := a.filters.Resolve(flags.filter)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		body, err = a.filterResults(ctx, f, body)
		if err != nil {
			return err
		}
	}

	if flags.pretty || a.cfg.Output.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return fmt.Errorf("failed to format response: %w", err)
		}
		body = buf.Bytes()
	}

	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// filterResults keeps the entries of a list response's "results" array that
// match f. Other fields, such as paging, are left as returned.
func (a *app) filterResults(ctx context.Context, f filter.Filter, body []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	raw, ok := doc["results"]
	if !ok {
		return nil, fmt.Errorf("response has no results to filter")
	}

	var records []filter.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	matches, err := a.filters.Apply(ctx, f, records)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("filter", f.Expression()).
		Int("total", len(records)).
		Int("matched", len(matches)).
		Msg("Filtered results")

	if doc["results"], err = json.Marshal(matches); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
