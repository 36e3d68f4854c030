package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/codec"
)

// infoCommand creates the info command, which reads only the header.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [container]",
		Short: "Print the header of a graph container",
		Long: `Print the header of a graph container.

Only the leading header is decompressed, so this is fast even for very
large containers. The body is not validated; use 'decode' for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			comp, err := codec.CompressionForPath(path)
			if err != nil {
				return err
			}
			h, err := codec.ReadHeaderFile(path)
			if err != nil {
				return err
			}
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			printKeyValue("Prefix", h.Prefix)
			printKeyValue("Vertices", strconv.FormatInt(h.VertexCount, 10))
			printKeyValue("Edges", strconv.FormatInt(h.EdgeCount, 10))
			printKeyValue("Directed", strconv.FormatBool(h.Directed))
			printKeyValue("Colored", strconv.FormatBool(h.Colored))
			printKeyValue("Compression", comp.String())
			printKeyValue("Size", fmt.Sprintf("%d bytes", fi.Size()))
			return nil
		},
	}
}
