package codec

import (
	"io"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	aerrors "github.com/addax-graph/addax/pkg/errors"
)

// Compression selects the streaming compressor wrapped around the record stream.
type Compression uint8

const (
	// Bzip2 is the default compression, matching files named *.graph.bz2.
	Bzip2 Compression = iota + 1
	// Zstd is zstandard compression, matching *.graph.zst.
	Zstd
	// Snappy is the snappy framing format, matching *.graph.sz.
	Snappy
)

// DefaultCompression is what [ParseCompression] returns for an empty name.
const DefaultCompression = Bzip2

// graphSuffix is the first half of every container file suffix.
const graphSuffix = ".graph"

var compressionSuffixes = map[Compression]string{
	Bzip2:  ".bz2",
	Zstd:   ".zst",
	Snappy: ".sz",
}

// Compressions lists the supported compressions in preference order.
var Compressions = []Compression{Bzip2, Zstd, Snappy}

func (c Compression) String() string {
	switch c {
	case Bzip2:
		return "bzip2"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	default:
		return "unknown"
	}
}

// Suffix returns the full file suffix for c, e.g. ".graph.bz2".
func (c Compression) Suffix() string {
	s, ok := compressionSuffixes[c]
	if !ok {
		return ""
	}
	return graphSuffix + s
}

func (c Compression) valid() error {
	if _, ok := compressionSuffixes[c]; !ok {
		return aerrors.New(aerrors.ErrCodeInvalidFormat, "unsupported compression %d", c)
	}
	return nil
}

// ParseCompression maps a compression name ("bzip2", "zstd", "snappy") or
// bare suffix ("bz2", "zst", "sz") to a Compression. The empty string
// selects [DefaultCompression].
func ParseCompression(s string) (Compression, error) {
	s = strings.TrimPrefix(strings.ToLower(s), ".")
	if s == "" {
		return DefaultCompression, nil
	}
	for _, c := range Compressions {
		if s == c.String() || s == strings.TrimPrefix(compressionSuffixes[c], ".") {
			return c, nil
		}
	}
	return 0, aerrors.New(aerrors.ErrCodeInvalidFormat, "unknown compression %q (must be one of: bzip2, zstd, snappy)", s)
}

// CompressionForPath returns the compression named by the path's suffix.
// Paths that do not end in .graph.<bz2|zst|sz> yield an INVALID_FORMAT error.
func CompressionForPath(path string) (Compression, error) {
	for _, c := range Compressions {
		if strings.HasSuffix(path, c.Suffix()) {
			return c, nil
		}
	}
	return 0, aerrors.New(aerrors.ErrCodeInvalidFormat,
		"%s: expected a .graph.bz2, .graph.zst, or .graph.sz file", path)
}

// newWriter wraps w in a compressor. Closing the returned writer flushes the
// compressed stream but does not close w.
func (c Compression) newWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	case Zstd:
		return zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedDefault))
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, c.valid()
	}
}

// newReader wraps r in a decompressor.
func (c Compression) newReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case Bzip2:
		return bzip2.NewReader(r, nil)
	case Zstd:
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, c.valid()
	}
}
