package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdeck/winprobe/internal/config"
	"github.com/opsdeck/winprobe/internal/kbscrape"
	"github.com/opsdeck/winprobe/internal/logging"
	"github.com/opsdeck/winprobe/internal/mgmtprobe"
	"github.com/opsdeck/winprobe/internal/patchlevel"
	"github.com/opsdeck/winprobe/internal/report"
	"github.com/opsdeck/winprobe/internal/winsvc"
	"github.com/opsdeck/winprobe/internal/wuhealth"
)

var (
	version = "0.1.0"
	cfgFile string
	format  string
	verbose bool
)

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "winprobe",
	Short: "Windows endpoint compliance probes",
	Long: `winprobe runs on-demand compliance probes on a Windows endpoint:
Windows Update health, update-management conflicts and patch compliance.
Each probe prints one status line and the process exits 0/1/2/3 for
OK/WARNING/CRITICAL/UNKNOWN.`,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run compliance probes",
}

var checkWinupdateCmd = &cobra.Command{
	Use:   "winupdate",
	Short: "Probe Windows Update health",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		finish(cfg, []report.Result{runWinupdate(cfg)})
	},
}

var checkManagementCmd = &cobra.Command{
	Use:   "management",
	Short: "Probe for conflicting update management tooling",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		finish(cfg, []report.Result{mgmtprobe.Probe()})
	},
}

var checkPatchesCmd = &cobra.Command{
	Use:   "patches",
	Short: "Probe installed-update compliance against the release cycle",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		finish(cfg, []report.Result{runPatches(cfg)})
	},
}

var checkAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every probe",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		results := []report.Result{
			runWinupdate(cfg),
			mgmtprobe.Probe(),
			runPatches(cfg),
		}
		finish(cfg, results)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("winprobe v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ProgramData\\Winprobe\\winprobe.yaml)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	checkCmd.AddCommand(checkWinupdateCmd)
	checkCmd.AddCommand(checkManagementCmd)
	checkCmd.AddCommand(checkPatchesCmd)
	checkCmd.AddCommand(checkAllCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(report.StatusUnknown.ExitCode())
	}
}

// setup loads configuration and wires logging. Probe output goes to
// stdout, so logs stay on stderr (optionally teed into a rotated file).
func setup() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(report.StatusUnknown.ExitCode())
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(report.StatusUnknown.ExitCode())
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	output := os.Stderr
	if cfg.LogFile != "" {
		if rw, err := logging.NewRotatingWriter(cfg.LogFile, cfg.LogMaxMB, 3); err == nil {
			logging.Init(cfg.LogFormat, level, logging.TeeWriter(os.Stderr, rw))
			return cfg
		}
		fmt.Fprintf(os.Stderr, "log file unavailable, logging to stderr only\n")
	}
	logging.Init(cfg.LogFormat, level, output)
	return cfg
}

func runWinupdate(cfg *config.Config) report.Result {
	opts := wuhealth.Options{
		DetectStaleDays:  cfg.DetectStaleDays,
		InstallStaleDays: cfg.InstallStaleDays,
		MinDiskSpaceGB:   cfg.MinDiskSpaceGB,
		QueryPending:     cfg.QueryPending,
		Services:         serviceExpectations(cfg),
	}
	return wuhealth.Probe(opts)
}

func serviceExpectations(cfg *config.Config) []winsvc.Expectation {
	if len(cfg.UpdateServices) == 0 {
		return nil // probe falls back to its defaults
	}
	var out []winsvc.Expectation
	for _, entry := range cfg.UpdateServices {
		name, expected, err := config.ParseServiceExpectation(entry)
		if err != nil {
			log.Warn("skipping service expectation", "entry", entry, "error", err)
			continue
		}
		out = append(out, winsvc.Expectation{Name: name, Expected: expected})
	}
	return out
}

func runPatches(cfg *config.Config) report.Result {
	th := patchlevel.Thresholds{WarnDays: cfg.PatchWarnDays, CritDays: cfg.PatchCritDays}
	return patchlevel.Probe(scrapeReference(cfg), th)
}

// scrapeReference fetches the newest cumulative update for this build line
// from the Microsoft update history page. Returns nil when scraping is off
// or anything fails; the probe then falls back to the built-in catalog.
func scrapeReference(cfg *config.Config) *patchlevel.Reference {
	if !cfg.ScrapeEnabled {
		return nil
	}
	osInfo, err := patchlevel.DetectOS()
	if err != nil {
		log.Warn("scrape skipped, OS detection failed", "error", err)
		return nil
	}

	url := cfg.ScrapeURL
	if url == "" {
		url = kbscrape.HistoryURL(osInfo.Build)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ScrapeTimeoutSec)*time.Second)
	defer cancel()

	entry, err := kbscrape.LatestKB(ctx, http.DefaultClient, url, osInfo.Build)
	if err != nil {
		log.Warn("scrape failed, falling back to catalog", "url", url, "error", err)
		return nil
	}
	log.Debug("scraped reference update", "kb", entry.KB, "released", entry.Released)
	return &patchlevel.Reference{KB: entry.KB, Released: entry.Released, Source: "scrape"}
}

// finish renders results and exits with the worst status.
func finish(cfg *config.Config, results []report.Result) {
	switch cfg.Format {
	case "json":
		out, err := report.EncodeJSON(results)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(report.StatusUnknown.ExitCode())
		}
		fmt.Println(out)
	case "yaml":
		out, err := report.EncodeYAML(results)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(report.StatusUnknown.ExitCode())
		}
		fmt.Print(out)
	default:
		for _, r := range results {
			fmt.Println(report.Format(r))
		}
	}
	os.Exit(report.Worst(results).ExitCode())
}
