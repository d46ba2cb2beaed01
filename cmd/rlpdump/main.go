// Command rlpdump inspects RLP-encoded data and the record schemas
// built on it.
//
// Usage:
//
//	rlpdump dump <hex>       pretty-print the item tree
//	rlpdump verify <hex>     check that the input is one canonical item
//	rlpdump describe <type>  print a record type's schema as JSON
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MasamiYui/ciri/core/types"
	"github.com/MasamiYui/ciri/rlp"
	"github.com/MasamiYui/ciri/sedes"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	root := newRootCmd(logger)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		return 1
	}
	return 0
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "rlpdump",
		Short:         "Inspect RLP-encoded data and record schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var asSequence bool
	dump := &cobra.Command{
		Use:   "dump <hex>",
		Short: "Parse hex input and pretty-print the item tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHexArg(args[0])
			if err != nil {
				return err
			}
			var items []*rlp.Item
			if asSequence {
				items, err = rlp.DecodeSequence(data)
			} else {
				var it *rlp.Item
				it, err = rlp.Decode(data)
				items = []*rlp.Item{it}
			}
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatItem(it, 0))
			}
			return nil
		},
	}
	dump.Flags().BoolVar(&asSequence, "seq", false, "accept a sequence of concatenated top-level items")

	verify := &cobra.Command{
		Use:   "verify <hex>",
		Short: "Check that the input is exactly one canonical item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHexArg(args[0])
			if err != nil {
				return err
			}
			if _, err := rlp.Decode(data); err != nil {
				return fmt.Errorf("not canonical: %w", err)
			}
			logger.Info("input verified", zap.Int("bytes", len(data)))
			fmt.Fprintf(cmd.OutOrStdout(), "canonical (%d bytes)\n", len(data))
			return nil
		},
	}

	describe := &cobra.Command{
		Use:   "describe <type>",
		Short: "Print a record type's schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ok := recordTypes()[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown record type %q", args[0])
			}
			out, err := describeType(rt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	root.AddCommand(dump, verify, describe)
	return root
}

// recordTypes lists the record types the tool can describe.
func recordTypes() map[string]*sedes.RecordType {
	return map[string]*sedes.RecordType{
		"header":    types.HeaderType(),
		"handshake": types.HandshakeType(),
	}
}

type schemaJSON struct {
	Name   string      `json:"name"`
	Fields []fieldJSON `json:"fields"`
}

type fieldJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func describeType(rt *sedes.RecordType) ([]byte, error) {
	desc := schemaJSON{Name: rt.Name()}
	for _, f := range rt.Schema().Fields() {
		desc.Fields = append(desc.Fields, fieldJSON{Name: f.Name, Type: f.Type.String()})
	}
	return json.MarshalIndent(desc, "", "  ")
}

// decodeHexArg accepts hex with or without a 0x prefix.
func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// formatItem renders an item tree: printable strings quoted, other
// strings as hex, lists bracketed one element per line.
func formatItem(it *rlp.Item, indent int) string {
	pad := strings.Repeat("  ", indent)
	if !it.IsList() {
		return pad + formatString(it.Bytes())
	}
	children := it.Items()
	if len(children) == 0 {
		return pad + "[]"
	}
	var sb strings.Builder
	sb.WriteString(pad + "[\n")
	for i, child := range children {
		sb.WriteString(formatItem(child, indent+1))
		if i < len(children)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(pad + "]")
	return sb.String()
}

func formatString(b []byte) string {
	if len(b) == 0 {
		return `""`
	}
	if isPrintable(b) {
		return fmt.Sprintf("%q", b)
	}
	return "0x" + hex.EncodeToString(b)
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return false
		}
	}
	return true
}
