// Package export writes derived, human-readable views of a graph.
//
// None of these outputs are needed to reload a graph; the binary container
// written by package codec is the source of truth. They exist for
// inspection and for handing results to other tools:
//
//   - [WriteCommunityCSV]: vertex ID to community label table
//   - [WriteEdgeCSV]: source, destination, weight table
//   - [CommunityDOT]: the community quotient graph in Graphviz DOT
//   - [RenderSVG]: DOT rendered to SVG through Graphviz
package export
