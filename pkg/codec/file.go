package codec

import (
	"fmt"
	"os"
	"path/filepath"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// WriteFile writes g to path, choosing the compression from the path suffix.
//
// The container is written to a temporary file in the same directory and
// renamed into place, so a failed write never leaves a partial file at path.
func WriteFile(path string, g *graph.Graph) error {
	c, err := CompressionForPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".addax-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Write(tmp, g, c); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the container at path. The compression comes from
// opts.Compression if set, otherwise from the path suffix.
func ReadFile(path string, opts Options) (*graph.Graph, error) {
	c := opts.Compression
	if c == 0 {
		var err error
		if c, err = CompressionForPath(path); err != nil {
			return nil, err
		}
	} else if err := c.valid(); err != nil {
		return nil, err
	}
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Read(f, c, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// ReadHeaderFile returns the header of the container at path without
// decoding its vertices or edges.
func ReadHeaderFile(path string) (Header, error) {
	c, err := CompressionForPath(path)
	if err != nil {
		return Header{}, err
	}
	f, err := openFile(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	h, err := PeekHeader(f, c)
	if err != nil {
		return Header{}, fmt.Errorf("read %s: %w", path, err)
	}
	return h, nil
}

// ReadPrefixFile returns the prefix stored in the container at path.
func ReadPrefixFile(path string) (string, error) {
	h, err := ReadHeaderFile(path)
	if err != nil {
		return "", err
	}
	return h.Prefix, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
