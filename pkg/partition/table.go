package partition

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// Table assigns labels read from a two-column CSV file: a header row, then
// vertex ID and community label per row. This is the format
// export.WriteCommunityCSV produces, so labels computed by an external tool
// can be applied to a rebuilt graph.
type Table struct {
	Path string
}

func (t Table) Assign(_ context.Context, _ *graph.Graph) (map[int64]int64, error) {
	f, err := os.Open(t.Path)
	if os.IsNotExist(err) {
		return nil, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "open community table %s", t.Path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	labels, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Path, err)
	}
	return labels, nil
}

// ReadTable parses an id,community CSV. Repeated IDs are INVALID_INPUT.
func ReadTable(r io.Reader) (map[int64]int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	labels := make(map[int64]int64)
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return labels, nil
		}
		if err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "malformed community table")
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, aerrors.New(aerrors.ErrCodeInvalidInput, "line %d: %d columns, need 2", line, len(row))
		}
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "line %d: vertex id %q", line, row[0])
		}
		label, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "line %d: community %q", line, row[1])
		}
		if _, dup := labels[id]; dup {
			return nil, aerrors.New(aerrors.ErrCodeInvalidInput, "line %d: vertex %d labelled twice", line, id)
		}
		labels[id] = label
	}
}
