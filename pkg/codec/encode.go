package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/addax-graph/addax/pkg/graph"
)

// Record sizes of the uncompressed layout, in bytes.
const (
	countsSize = 8 + 8 + 1 + 1
	headerSize = countsSize + graph.PrefixSize
	vertexSize = 4 * 8
	edgeSize   = 3 * 8
)

var byteOrder = binary.LittleEndian

// Encode serializes g with compression c and returns the compressed bytes.
func Encode(g *graph.Graph, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes g with compression c to w in a single pass.
// It returns an INVALID_CONFIG error if the prefix would not read back
// unchanged. Write does not close w.
func Write(w io.Writer, g *graph.Graph, c Compression) error {
	if err := graph.ValidatePrefix(g.Prefix()); err != nil {
		return err
	}

	zw, err := c.newWriter(w)
	if err != nil {
		return fmt.Errorf("%s writer: %w", c, err)
	}
	bw := bufio.NewWriterSize(zw, 64*1024)

	if err := writeRecords(bw, g); err != nil {
		zw.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		zw.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", c, err)
	}
	return nil
}

func writeRecords(w io.Writer, g *graph.Graph) error {
	var header [headerSize]byte
	byteOrder.PutUint64(header[0:8], uint64(g.VertexCount()))
	byteOrder.PutUint64(header[8:16], uint64(g.EdgeCount()))
	header[16] = boolByte(g.Directed())
	header[17] = boolByte(g.Colored())
	copy(header[countsSize:], g.Prefix())
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var rec [vertexSize]byte
	for _, v := range g.Vertices() {
		byteOrder.PutUint64(rec[0:8], uint64(v.ID))
		byteOrder.PutUint64(rec[8:16], uint64(v.Index))
		byteOrder.PutUint64(rec[16:24], uint64(v.Community))
		byteOrder.PutUint64(rec[24:32], uint64(v.Color))
		if _, err := w.Write(rec[:vertexSize]); err != nil {
			return fmt.Errorf("write vertex %d: %w", v.ID, err)
		}
	}

	for _, e := range g.Edges() {
		byteOrder.PutUint64(rec[0:8], uint64(e.Source))
		byteOrder.PutUint64(rec[8:16], uint64(e.Destination))
		byteOrder.PutUint64(rec[16:24], math.Float64bits(e.Weight))
		if _, err := w.Write(rec[:edgeSize]); err != nil {
			return fmt.Errorf("write edge %d->%d: %w", e.Source, e.Destination, err)
		}
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
