package codec

import (
	"bytes"
	"io"
	"math"
	"unicode/utf8"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// Options controls decoding.
type Options struct {
	// VerticesOnly stops after the vertex records. The returned graph has
	// no edges even when the header declares some.
	VerticesOnly bool

	// Compression overrides the path suffix in [ReadFile] when non-zero.
	Compression Compression
}

// Header is the fixed-size leading section of a container.
type Header struct {
	VertexCount int64
	EdgeCount   int64
	Directed    bool
	Colored     bool
	Prefix      string
}

// Decode parses a compressed container produced with compression c.
//
// The whole payload is decompressed into memory first. Decode returns a
// CORRUPT_DATA error if decompression fails, if the payload length does not
// match the header counts, or if the records repeat a vertex ID or reference
// a vertex that was not declared. No partial graph is returned on error.
func Decode(data []byte, c Compression, opts Options) (*graph.Graph, error) {
	return Read(bytes.NewReader(data), c, opts)
}

// Read decompresses everything from r and decodes it as [Decode] does.
// Read does not close r.
func Read(r io.Reader, c Compression, opts Options) (*graph.Graph, error) {
	raw, err := decompress(r, c)
	if err != nil {
		return nil, err
	}
	return parse(raw, opts)
}

// PeekHeader decompresses only enough of r to return the header.
// The body is neither read nor validated.
func PeekHeader(r io.Reader, c Compression) (Header, error) {
	zr, err := c.newReader(r)
	if err != nil {
		return Header{}, aerrors.Wrap(aerrors.ErrCodeCorruptData, err, "open %s stream", c)
	}
	defer zr.Close()

	var buf [headerSize]byte
	if n, err := io.ReadFull(zr, buf[:]); err != nil {
		return Header{}, aerrors.Wrap(aerrors.ErrCodeCorruptData, err,
			"header truncated at offset %d (need %d bytes)", n, headerSize)
	}
	return parseHeader(buf[:])
}

// PeekPrefix returns the prefix stored in the header of r.
func PeekPrefix(r io.Reader, c Compression) (string, error) {
	h, err := PeekHeader(r, c)
	if err != nil {
		return "", err
	}
	return h.Prefix, nil
}

func decompress(r io.Reader, c Compression) ([]byte, error) {
	zr, err := c.newReader(r)
	if err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeCorruptData, err, "open %s stream", c)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeCorruptData, err,
			"decompress %s stream after %d bytes", c, len(raw))
	}
	return raw, nil
}

func parseHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, aerrors.New(aerrors.ErrCodeCorruptData,
			"header truncated at offset %d (need %d bytes)", len(b), headerSize)
	}
	h := Header{
		VertexCount: int64(byteOrder.Uint64(b[0:8])),
		EdgeCount:   int64(byteOrder.Uint64(b[8:16])),
		Directed:    b[16] != 0,
		Colored:     b[17] != 0,
	}
	if h.VertexCount < 0 {
		return Header{}, aerrors.New(aerrors.ErrCodeCorruptData, "negative vertex count %d at offset 0", h.VertexCount)
	}
	if h.EdgeCount < 0 {
		return Header{}, aerrors.New(aerrors.ErrCodeCorruptData, "negative edge count %d at offset 8", h.EdgeCount)
	}

	prefix := bytes.TrimRight(b[countsSize:headerSize], "\x00")
	if !utf8.Valid(prefix) {
		return Header{}, aerrors.New(aerrors.ErrCodeCorruptData, "prefix at offset %d is not valid UTF-8", countsSize)
	}
	h.Prefix = string(prefix)
	return h, nil
}

// checkLength verifies that raw holds exactly the records the header declares.
func checkLength(h Header, size int) error {
	body := int64(size - headerSize)
	if h.VertexCount > math.MaxInt64/vertexSize || h.EdgeCount > math.MaxInt64/edgeSize {
		return aerrors.New(aerrors.ErrCodeCorruptData,
			"header counts (%d vertices, %d edges) exceed payload of %d bytes", h.VertexCount, h.EdgeCount, size)
	}
	vertexBytes := h.VertexCount * vertexSize
	edgeBytes := h.EdgeCount * edgeSize
	if vertexBytes > body || edgeBytes > body-vertexBytes {
		return aerrors.New(aerrors.ErrCodeCorruptData,
			"payload ends at offset %d, header declares %d vertices and %d edges", size, h.VertexCount, h.EdgeCount)
	}
	if want := vertexBytes + edgeBytes; body != want {
		return aerrors.New(aerrors.ErrCodeCorruptData,
			"%d trailing bytes at offset %d", body-want, int64(headerSize)+want)
	}
	return nil
}

func parse(raw []byte, opts Options) (*graph.Graph, error) {
	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	if err := checkLength(h, len(raw)); err != nil {
		return nil, err
	}

	g, err := graph.New(h.Prefix, h.Directed, h.Colored)
	if err != nil {
		return nil, aerrors.Wrap(aerrors.ErrCodeCorruptData, err, "header at offset 0")
	}

	off := headerSize
	for i := int64(0); i < h.VertexCount; i++ {
		rec := raw[off : off+vertexSize]
		v := graph.Vertex{
			ID:        int64(byteOrder.Uint64(rec[0:8])),
			Index:     int64(byteOrder.Uint64(rec[8:16])),
			Community: int64(byteOrder.Uint64(rec[16:24])),
			Color:     int64(byteOrder.Uint64(rec[24:32])),
		}
		if err := g.AddVertex(v); err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeCorruptData, err, "vertex record %d at offset %d", i, off)
		}
		off += vertexSize
	}

	if opts.VerticesOnly {
		return g, nil
	}

	for i := int64(0); i < h.EdgeCount; i++ {
		rec := raw[off : off+edgeSize]
		e := graph.Edge{
			Source:      int64(byteOrder.Uint64(rec[0:8])),
			Destination: int64(byteOrder.Uint64(rec[8:16])),
			Weight:      math.Float64frombits(byteOrder.Uint64(rec[16:24])),
		}
		if err := g.AddEdge(e); err != nil {
			return nil, aerrors.Wrap(aerrors.ErrCodeCorruptData, err, "edge record %d at offset %d", i, off)
		}
		off += edgeSize
	}
	return g, nil
}
