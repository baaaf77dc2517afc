package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/soyunomas/dupr/internal/config"
	"github.com/soyunomas/dupr/internal/engine"
	"github.com/soyunomas/dupr/internal/logger"
	"github.com/soyunomas/dupr/internal/progress"
	"github.com/soyunomas/dupr/internal/report"
)

// Version se sobreescribe en build con -ldflags "-X main.Version=..."
var Version = "0.1.0"

func newRootCommand() *cobra.Command {
	var configFile string

	command := &cobra.Command{
		Use:   "dupr [flags] DIR",
		Short: "Duplicate file finder",
		Long: `dupr scans DIR recursively and prints groups of files with identical content.
Files are bucketed by size, hard links to the same inode are collapsed, and the
remaining candidates are compared with a 64-bit xxhash of their content.`,
		Example: `  dupr ~/Pictures
  dupr -n -s --size /srv/media
  dupr --json --exclude .git --exclude node_modules .`,
		Args:          cobra.ExactArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := command.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "Config file (YAML)")
	flags.BoolP("noempty", "n", false, "Exclude zero-length files")
	flags.BoolP("summary", "s", false, "Print a summary after the duplicate groups")
	flags.BoolP("size", "S", false, "Print the shared size before each group")
	flags.BoolP("sameline", "1", false, "Print each group on a single line")
	flags.String("separator", report.DefaultSeparator, "Separator used with --sameline")
	flags.BoolP("quiet", "q", false, "Hide the progress indicator")
	flags.Bool("json", false, "Print a JSON report instead of plain text")
	flags.Uint64("min-size", 0, "Ignore files smaller than this many bytes")
	flags.StringSlice("exclude", nil, "Directory names to skip (repeatable)")
	flags.IntP("jobs", "j", runtime.NumCPU(), "Number of concurrent hashing workers")
	flags.Uint64("seed", 0, "Hash seed")
	flags.CountP("verbose", "v", "Verbose level")
	flags.StringP("log", "l", "", "Also write diagnostics to this file")

	command.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		return runScan(cmd, args[0], cfg)
	}

	return command
}

func runScan(cmd *cobra.Command, rootDir string, cfg *config.Config) error {
	logger.Init(logger.Options{
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
		Out:     cmd.ErrOrStderr(),
	})
	log := logger.GetLogger("dupr")

	tracker := progress.NewTracker()
	stopSpinner := func() {}
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && progress.Enabled(f, cfg.Quiet || cfg.Verbose > 0) {
		spinner := progress.NewSpinner(tracker, f, 10)
		spinner.Start()
		stopSpinner = spinner.Stop
	}
	defer stopSpinner()

	runner := engine.New(engine.Options{
		NoEmpty:  cfg.NoEmpty,
		MinSize:  cfg.MinSize,
		Excludes: cfg.Excludes,
		Workers:  cfg.Jobs,
		Seed:     cfg.Seed,
		Log:      logger.GetLogger("engine"),
		Progress: tracker,
	})

	res, err := runner.Run(rootDir)
	stopSpinner()
	if err != nil {
		return err
	}

	if res.Stats.Errors > 0 {
		log.Infof("%d paths skipped because of errors", res.Stats.Errors)
	}

	out := cmd.OutOrStdout()
	if cfg.JSON {
		return report.WriteJSON(out, report.New(rootDir, cfg.Seed, res.Groups, res.Stats))
	}

	if err := report.WriteGroups(out, res.Groups, report.Format{
		ShowSize:  cfg.ShowSize,
		SameLine:  cfg.SameLine,
		Separator: cfg.Separator,
	}); err != nil {
		return err
	}

	if cfg.Summary {
		if len(res.Groups) > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, report.SummaryLine(res.Stats))
	}
	return nil
}
