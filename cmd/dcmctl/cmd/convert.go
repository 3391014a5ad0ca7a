package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmattr.go/pkg/config"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/stream"
)

// NewConvertCmd re-encodes a data set in another transfer syntax
func NewConvertCmd(ctx context.Context, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "re-encode a data set",
		Long:  "Reads a raw data set in one transfer syntax and writes it in another, optionally with group lengths or undefined length sequences.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			if in == "" || out == "" {
				return fmt.Errorf("--in and --out are required")
			}
			if in != "-" {
				if a, b := filepath.Clean(in), filepath.Clean(out); a == b {
					return fmt.Errorf("refusing to overwrite the input %s", in)
				}
			}
			from, err := syntaxFlag(cmd, "from", cfg)
			if err != nil {
				return err
			}
			to, err := syntaxFlag(cmd, "to", cfg)
			if err != nil {
				return err
			}
			opts := cfg.Write
			if cmd.Flags().Changed("group-lengths") {
				opts.WriteGroupLengths, _ = cmd.Flags().GetBool("group-lengths")
			}
			if cmd.Flags().Changed("undefined-sequences") {
				opts.UndefinedLengthSequences, _ = cmd.Flags().GetBool("undefined-sequences")
			}

			c, err := readInput(cmd, in, from, cfg.ReadOptions())
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			if cs, _ := cmd.Flags().GetString("charset"); cs != "" {
				if err := c.SetSpecificCharacterSet(cs); err != nil {
					return err
				}
			}
			n, err := stream.WriteFile(out, c, to, opts)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			slog.InfoContext(ctx, "converted data set",
				"in", in, "from", from.Name(),
				"out", out, "to", to.Name(),
				"attributes", c.Len(), "bytes", n)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input data set path, - for stdin")
	pf.StringP("out", "o", "", "output path")
	pf.String("from", "", "input transfer syntax (default from config)")
	pf.String("to", "", "output transfer syntax (default from config)")
	pf.String("charset", "", "re-encode text with this specific character set")
	pf.Bool("group-lengths", false, "write (gggg,0000) group lengths")
	pf.Bool("undefined-sequences", false, "write sequences and items with delimiters")
	return cmd
}
