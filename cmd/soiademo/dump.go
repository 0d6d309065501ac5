package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	soia "github.com/gepheum/soia-go"
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <base64-or-hex>",
		Short: "pretty-print the wire structure of soia-encoded bytes",
		Long: `Decodes the argument (base64, or hex with a "hex:" prefix) as a complete
soia binary value and prints its wire structure, without needing a schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeDumpArg(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), soia.DebugString(data))
			return nil
		},
	}
}

func decodeDumpArg(arg string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(arg, "hex:"); ok {
		data, err := hex.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	}
	data, err := base64.StdEncoding.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}
	return data, nil
}
