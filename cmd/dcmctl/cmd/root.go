package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jpfielding/dcmattr.go/pkg/config"
	"github.com/jpfielding/dcmattr.go/pkg/logging"
)

// NewRoot builds the command tree. The loaded config is shared with every
// subcommand through the returned command's persistent pre-run.
func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cfg := config.Default()
	var logFile io.Closer
	cmd := &cobra.Command{
		Use:          "dcmctl",
		Short:        "inspect and re-encode raw DICOM data sets",
		Long:         "dcmctl parses, dumps and converts DICOM data set streams between transfer syntaxes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
			overrideLog(cmd.Flags(), &cfg.Log)

			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = slog.LevelInfo
			}
			var w io.Writer = os.Stderr
			if cfg.Log.File != "" {
				rf := logging.RotatingFile(cfg.Log.File, 10, 3)
				logFile, w = rf, rf
			}
			slog.SetDefault(logging.Logger(w, cfg.Log.JSON, level))
			if err != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", cfg.Log.Level, "error", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.SetContext(ctx)
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewDumpCmd(ctx, &cfg),
		NewConvertCmd(ctx, &cfg),
		NewUIDCmd(ctx),
		NewSampleCmd(ctx, &cfg),
	)
	pf := cmd.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "write logs to a rotated file instead of stderr")
	pf.Bool("log-json", false, "log as JSON")
	return cmd
}

// overrideLog applies the log flags that were set explicitly
func overrideLog(fs *pflag.FlagSet, l *config.Log) {
	if fs.Changed("log-level") {
		l.Level, _ = fs.GetString("log-level")
	}
	if fs.Changed("log-file") {
		l.File, _ = fs.GetString("log-file")
	}
	if fs.Changed("log-json") {
		l.JSON, _ = fs.GetBool("log-json")
	}
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
