// Package bbstat provides a minimal client for the bbstat CSV service, the
// source of lineups, per-game player stats, defense lines and scores.
package bbstat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ErrNotFound marks a route the source does not have (HTTP 404).
var ErrNotFound = errors.New("not found")

// ErrUnavailable marks an unreachable source or a non-success response.
// Callers must treat it as fatal for the affected year, never as empty data.
var ErrUnavailable = errors.New("source unavailable")

// Client is a minimal bbstat service client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the bbstat service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// get fetches a CSV route and returns its parsed records, header first.
func (c *Client) get(route string) (*table, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/"+route, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %v", route, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", route, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: HTTP %d: %w", route, resp.StatusCode, ErrUnavailable)
	}

	t, err := parseTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", route, err)
	}
	return t, nil
}

// table is a CSV body with columns addressable by header name.
type table struct {
	cols map[string]int
	rows [][]string
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: missing header")
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	return &table{cols: cols, rows: records[1:]}, nil
}

// scanner reads typed fields out of one row, remembering the first error so
// row mappers stay flat.
type scanner struct {
	t   *table
	row []string
	err error
}

func (s *scanner) str(col string) string {
	i, ok := s.t.cols[col]
	if !ok {
		if s.err == nil {
			s.err = fmt.Errorf("missing column %q", col)
		}
		return ""
	}
	return s.row[i]
}

func (s *scanner) num(col string) int {
	v := s.str(col)
	if v == "" || s.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Some sources serialize counts as floats ("3.0").
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			if s.err == nil {
				s.err = fmt.Errorf("column %q: bad number %q", col, v)
			}
			return 0
		}
		n = int(f)
	}
	return n
}

func (t *table) each(fn func(s *scanner) error) error {
	for i, row := range t.rows {
		s := &scanner{t: t, row: row}
		if err := fn(s); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if s.err != nil {
			return fmt.Errorf("row %d: %w", i+1, s.err)
		}
	}
	return nil
}
