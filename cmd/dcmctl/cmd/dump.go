package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmattr.go/pkg/config"
	"github.com/jpfielding/dcmattr.go/pkg/dicom"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/stream"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
)

var syntaxAliases = map[string]transfer.Syntax{
	"implicit": transfer.ImplicitVRLittleEndian,
	"explicit": transfer.ExplicitVRLittleEndian,
	"big":      transfer.ExplicitVRBigEndian,
	"deflated": transfer.DeflatedExplicitVR,
}

// syntaxFlag resolves a UID or alias flag, falling back to the config
func syntaxFlag(cmd *cobra.Command, name string, cfg *config.Config) (transfer.Syntax, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return cfg.Syntax()
	}
	if ts, ok := syntaxAliases[strings.ToLower(s)]; ok {
		return ts, nil
	}
	if ts, ok := transfer.Lookup(s); ok {
		return ts, nil
	}
	return "", fmt.Errorf("%w: %q", config.ErrUnknownSyntax, s)
}

func readInput(cmd *cobra.Command, path string, ts transfer.Syntax, opts stream.Options) (*dicom.Collection, error) {
	if path == "-" {
		return stream.Read(cmd.InOrStdin(), ts, opts)
	}
	return stream.ReadFile(path, ts, opts)
}

// NewDumpCmd prints a data set as text or JSON
func NewDumpCmd(ctx context.Context, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "print the attributes of a data set",
		Long:  "Parses a raw data set stream (no part 10 preamble) and prints its attributes as text or JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}
			ts, err := syntaxFlag(cmd, "syntax", cfg)
			if err != nil {
				return err
			}
			opts := cfg.ReadOptions()
			if stop, _ := cmd.Flags().GetString("stop"); stop != "" {
				if opts.StopTag, err = tag.Parse(stop); err != nil {
					return err
				}
			}

			c, err := readInput(cmd, path, ts, opts)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			slog.DebugContext(ctx, "parsed data set", "file", path, "syntax", ts.Name(), "attributes", c.Len())

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				full, _ := cmd.Flags().GetBool("full")
				narrow, _ := cmd.Flags().GetBool("narrow")
				var sb strings.Builder
				c.Dump(&sb, "", dicom.DumpOptions{ShortenLongValues: !full, Restrict80Chars: narrow})
				fmt.Fprint(out, sb.String())
			default:
				j, err := json.Marshal(c)
				if err != nil {
					return err
				}
				out.Write(j)
				fmt.Fprintln(out)
			}

			if validate, _ := cmd.Flags().GetBool("validate"); validate {
				reqs := append(append(dicom.SOPCommonRequirements, dicom.PatientRequirements...), dicom.GeneralStudyRequirements...)
				result := c.Validate(reqs...)
				for _, e := range result.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", e.Error())
				}
				for _, w := range result.Warnings {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Error())
				}
				if !result.IsValid() {
					return fmt.Errorf("data set failed validation with %d errors", len(result.Errors))
				}
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "data set path, - for stdin")
	pf.StringP("syntax", "s", "", "transfer syntax UID or implicit|explicit|big|deflated")
	pf.String("format", "text", "output format (text|json)")
	pf.String("stop", "", "stop before this tag, e.g. (7FE0,0010)")
	pf.Bool("full", false, "do not shorten long values")
	pf.Bool("narrow", false, "cut lines at 80 columns")
	pf.Bool("validate", false, "check SOP common, patient and study requirements")
	return cmd
}
