// Package codec reads and writes graphs in the compressed binary container
// format used for persisted connectivity graphs.
//
// # Layout
//
// The uncompressed stream is a fixed-width little-endian record sequence:
//
//	offset  size  field
//	0       8     vertex count (int64)
//	8       8     edge count (int64)
//	16      1     directed (bool)
//	17      1     colored (bool)
//	18      128   prefix, UTF-8, zero padded
//	146     32*n  vertices: id, enumeration index, community, color (int64 each)
//	...     24*m  edges: source id, destination id (int64), weight (float64)
//
// Vertices and edges are written in the graph's insertion order. The whole
// stream goes through one streaming compressor; nothing in the format allows
// random access to individual records.
//
// # Compression
//
// The file suffix names the compressor:
//
//   - .graph.bz2: bzip2, the default, readable by the original tooling
//   - .graph.zst: zstandard
//   - .graph.sz:  snappy framed stream
//
// Paths with any other suffix are rejected with an INVALID_FORMAT error on
// both read and write.
//
// # Decoding
//
// [Decode] and [Read] decompress the entire payload, then parse it. With
// [Options.VerticesOnly] set, edges are skipped and the returned graph has
// none. A payload whose length disagrees with its header counts is rejected
// with a CORRUPT_DATA error carrying the byte offset.
//
// [PeekHeader] and [PeekPrefix] stop decompressing once the 146 header bytes
// are available. They do not check the body.
//
// # Determinism
//
// Encoders run single-threaded at fixed levels, so encoding the same graph
// twice produces identical bytes.
package codec
