package builder

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	aerrors "github.com/addax-graph/addax/pkg/errors"
)

// Columns selects the relation fields from a CSV row by zero-based index.
type Columns struct {
	Source      int
	Destination int
	Weight      int
}

// DefaultColumns reads source, destination, and weight from the first three
// columns.
var DefaultColumns = Columns{Source: 0, Destination: 1, Weight: 2}

// Validate reports negative column indices as INVALID_CONFIG.
func (c Columns) Validate() error {
	if c.Source < 0 || c.Destination < 0 || c.Weight < 0 {
		return aerrors.New(aerrors.ErrCodeInvalidConfig,
			"relation columns must be non-negative, got source=%d destination=%d weight=%d",
			c.Source, c.Destination, c.Weight)
	}
	return nil
}

func (c Columns) width() int {
	return max(c.Source, c.Destination, c.Weight) + 1
}

// ReadEntities parses an entity CSV: one header row, then one row per
// entity with the integer ID in the first column. Other columns are ignored.
// Duplicates are returned as-is; [Builder.AddEntity] rejects them.
func ReadEntities(r io.Reader) ([]int64, error) {
	var ids []int64
	err := readRows(r, 1, func(line int, row []string) error {
		id, err := parseInt(line, "entity id", row[0])
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}

// ReadRelations parses a relation CSV: one header row, then one row per
// relation with integer source, destination, and weight at the positions
// cols names.
func ReadRelations(r io.Reader, cols Columns) ([]Relation, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	var rels []Relation
	err := readRows(r, cols.width(), func(line int, row []string) error {
		src, err := parseInt(line, "source id", row[cols.Source])
		if err != nil {
			return err
		}
		dst, err := parseInt(line, "destination id", row[cols.Destination])
		if err != nil {
			return err
		}
		w, err := parseInt(line, "weight", row[cols.Weight])
		if err != nil {
			return err
		}
		rels = append(rels, Relation{Source: src, Destination: dst, Weight: w})
		return nil
	})
	return rels, err
}

// readRows skips the header and calls fn for each data row with its line
// number. Rows narrower than width are INVALID_INPUT.
func readRows(r io.Reader, width int, fn func(line int, row []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "malformed csv")
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(row) < width {
			return aerrors.New(aerrors.ErrCodeInvalidInput,
				"line %d: %d columns, need at least %d", line, len(row), width)
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func parseInt(line int, field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, aerrors.Wrap(aerrors.ErrCodeInvalidInput, err, "line %d: %s %q", line, field, s)
	}
	return v, nil
}
