package flatfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// table is one flat file with a header row. Every read goes back to disk;
// mu serializes read-modify-write cycles within the process.
type table struct {
	mu     sync.Mutex
	path   string
	header []string
	codec  codec
}

func newTable(path string, header []string) (*table, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	t := &table{path: path, header: header, codec: c}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := c.write(path, [][]string{header}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return t, nil
}

// rows returns the data rows as column-name lookups. Columns are matched by
// header name so files written with fewer trailing columns still load.
// Caller need not hold mu: the file is only ever replaced by rename.
func (t *table) rows() ([]record, error) {
	raw, err := t.codec.read(t.path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	index := make(map[string]int, len(raw[0]))
	for i, name := range raw[0] {
		index[name] = i
	}
	out := make([]record, 0, len(raw)-1)
	for _, r := range raw[1:] {
		if isBlank(r) {
			continue
		}
		out = append(out, record{index: index, cells: r})
	}
	return out, nil
}

// save rewrites the whole table in the canonical column order.
func (t *table) save(recs []record) error {
	raw := make([][]string, 0, len(recs)+1)
	raw = append(raw, t.header)
	for _, rec := range recs {
		row := make([]string, len(t.header))
		for i, name := range t.header {
			row[i] = rec.get(name)
		}
		raw = append(raw, row)
	}
	return t.codec.write(t.path, raw)
}

type record struct {
	index map[string]int
	cells []string
}

func newRecord(header []string, values map[string]string) record {
	index := make(map[string]int, len(header))
	cells := make([]string, len(header))
	for i, name := range header {
		index[name] = i
		cells[i] = values[name]
	}
	return record{index: index, cells: cells}
}

func (r record) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
