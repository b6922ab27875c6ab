package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/export"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/pipeline"
	"github.com/jobradar/jobradar/internal/policy"
	"github.com/jobradar/jobradar/internal/provider"
	"github.com/jobradar/jobradar/internal/secrets"
	"github.com/jobradar/jobradar/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExit           = "Exit"
	PromptReportBySource = "Report by source"
	PromptDumpToFile     = "Dump shortlist to file"

	coverNotesPerTrack = 5
	runLockTTL         = 30 * time.Minute
	defaultOutputDir   = "./data/outputs"
)

var (
	// Track selection for cover notes is looser than the scorer's
	// word-bounded backend rule on purpose.
	backendTrackHint = regexp.MustCompile(`(?i)node|express|typescript|php`)
	mobileTrackHint  = regexp.MustCompile(`(?i)react\s*native|titanium`)
)

var prompt = promptui.Select{
	Label: "Shortlist ready. What next?",
	Items: []string{PromptReportBySource, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch all providers, score and rank postings, persist and export the shortlist",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("yes", "y", false, "do not open the interactive menu after a run")
	runCmd.Flags().Bool("dry-run", false, "skip persistence, only export files")
	runCmd.Flags().StringP("schedule", "s", "", "cron spec for repeated runs, e.g. '@every 6h'. Default is a single run.")

	viper.BindPFlag("schedule", runCmd.Flags().Lookup("schedule"))
}

type runDeps struct {
	config  *Config
	policy  policy.Config
	pipe    *pipeline.Pipeline
	store   *store.Store
	lock    *store.RunLock
	logger  *zap.Logger
	persist bool
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobradar", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Search == nil {
		logger.Fatal("a search section with keywords is required")
	}
	if len(config.Search.Keywords) == 0 {
		logger.Fatal("at least one keyword is required under search.keywords")
	}

	deps := &runDeps{
		config: config,
		policy: policyFromConfig(config.Search),
		logger: logger,
	}

	providers := buildProviders(config, deps.policy)
	if len(providers) == 0 {
		logger.Fatal("no providers are enabled in the providers section")
	}
	deps.pipe = pipeline.New(providers, deps.policy, logger)

	deps.persist = cmd.Flag("dry-run").Value.String() == "false"
	if deps.persist {
		deps.store, deps.lock = openSinks(ctx, config, logger)
		if deps.store != nil {
			defer deps.store.Close()
		}
	}

	schedule := viper.GetString("schedule")
	if schedule != "" {
		runOnSchedule(ctx, deps, schedule)
		return
	}

	shortlist := runOnce(ctx, deps)

	if cmd.Flag("yes").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptReportBySource:
			pretty, _ := json.MarshalIndent(pipeline.JobsOf(shortlist).ReportBySource(), "", "  ")
			logger.Info(string(pretty), zap.Int("shortlist count", len(shortlist)))
		case PromptDumpToFile:
			filename, err := pipeline.JobsOf(shortlist).DumpToTmpFile()
			if err != nil {
				logger.Fatal("dump shortlist to file", zap.Error(err))
			}
			logger.Info("dumped shortlist to file", zap.String("filename", filename))
		case PromptExit:
			return
		}
	}
}

// runOnce executes one full batch: fetch, score, rank, persist, export.
func runOnce(ctx context.Context, deps *runDeps) []*pipeline.Scored {
	logger := deps.logger

	if deps.lock != nil {
		ok, err := deps.lock.Acquire(ctx)
		if err != nil {
			logger.Warn("run lock unavailable, continuing without it", zap.Error(err))
		} else if !ok {
			logger.Info("skipping run", zap.String("reason", "another run holds the lock"))
			return nil
		} else {
			defer func() {
				if err := deps.lock.Release(ctx); err != nil {
					logger.Warn("releasing run lock", zap.Error(err))
				}
			}()
		}
	}

	started := time.Now().UTC()
	shortlist := deps.pipe.Run(ctx)

	if deps.store != nil && len(shortlist) > 0 {
		upserted, err := deps.store.UpsertShortlist(ctx, shortlist, started)
		if err != nil {
			logger.Error("persisting shortlist", zap.Error(err))
		} else {
			logger.Info("persisted shortlist", zap.Int("upserted", upserted))
		}
	}

	outDir := deps.config.OutputDir
	if outDir == "" {
		outDir = defaultOutputDir
	}
	dateTag := started.Format("2006-01-02")

	if path, err := export.WriteCSV(shortlist, outDir, dateTag); err != nil {
		logger.Error("writing csv export", zap.Error(err))
	} else {
		logger.Info("wrote csv export", zap.String("path", path))
	}

	if path, err := export.WriteHTML(shortlist, outDir, dateTag); err != nil {
		logger.Error("writing html export", zap.Error(err))
	} else {
		logger.Info("wrote html export", zap.String("path", path))
	}

	writeCoverNotes(deps, shortlist, outDir)

	logger.Info("run complete",
		zap.Int("shortlist", len(shortlist)),
		zap.String("output_dir", outDir),
	)

	return shortlist
}

func runOnSchedule(ctx context.Context, deps *runDeps, spec string) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		runOnce(ctx, deps)
	})
	if err != nil {
		deps.logger.Fatal("invalid schedule", zap.String("spec", spec), zap.Error(err))
	}

	c.Start()
	deps.logger.Info("scheduler started", zap.String("spec", spec))

	// Populate outputs immediately instead of waiting for the first tick.
	runOnce(ctx, deps)

	select {}
}

func writeCoverNotes(deps *runDeps, shortlist []*pipeline.Scored, outDir string) {
	if deps.config.Profile == nil {
		return
	}

	tmplText := export.DefaultCoverTemplate
	if deps.config.CoverTemplateFile != "" {
		data, err := os.ReadFile(deps.config.CoverTemplateFile)
		if err != nil {
			deps.logger.Warn("reading cover template, falling back to the built-in one", zap.Error(err))
		} else {
			tmplText = string(data)
		}
	}

	profile := export.Profile{
		Name:          deps.config.Profile.Name,
		Years:         deps.config.Profile.Years,
		BackendImpact: deps.config.Profile.BackendImpact,
		MobileImpact:  deps.config.Profile.MobileImpact,
	}

	tracks := []struct {
		track export.Track
		hint  *regexp.Regexp
	}{
		{export.TrackBackend, backendTrackHint},
		{export.TrackMobile, mobileTrackHint},
	}

	for _, t := range tracks {
		var top []*pipeline.Scored
		for _, item := range shortlist {
			if t.hint.MatchString(item.Job.Title + " " + item.Job.Description) {
				top = append(top, item)
			}
			if len(top) == coverNotesPerTrack {
				break
			}
		}

		written, err := export.WriteCoverNotes(top, t.track, tmplText, outDir, profile)
		if err != nil {
			deps.logger.Error("writing cover notes", zap.String("track", string(t.track)), zap.Error(err))
			continue
		}
		if len(written) > 0 {
			deps.logger.Info("wrote cover notes",
				zap.String("track", string(t.track)),
				zap.Int("count", len(written)),
			)
		}
	}
}

func policyFromConfig(search *SearchConfig) policy.Config {
	keywords := make([]string, 0, len(search.Keywords))
	for _, k := range search.Keywords {
		// A blank keyword would match every posting as a substring.
		if strings.TrimSpace(k) != "" {
			keywords = append(keywords, k)
		}
	}

	return policy.Config{
		Keywords:             lowered(keywords),
		MinSalaryEUR:         search.MinSalaryEUR,
		AllowUSRemote:        search.AllowUSRemote,
		AllowedLocationHints: lowered(search.AllowedLocationHints),
		BlockedLocationHints: lowered(search.BlockedLocationHints),
		PreferredCountry:     search.PreferredCountry,
	}
}

func buildProviders(config *Config, cfg policy.Config) []pipeline.Provider {
	var providers []pipeline.Provider
	if config.Providers == nil {
		return providers
	}

	if len(config.Providers.Greenhouse) > 0 {
		providers = append(providers, provider.NewGreenhouse(config.Providers.Greenhouse, cfg))
	}
	if len(config.Providers.Lever) > 0 {
		providers = append(providers, provider.NewLever(config.Providers.Lever, cfg))
	}
	if len(config.Providers.Ashby) > 0 {
		providers = append(providers, provider.NewAshby(config.Providers.Ashby, cfg))
	}
	if config.Providers.Remotive {
		providers = append(providers, provider.NewRemotive(cfg))
	}
	if config.Providers.RemoteOK {
		providers = append(providers, provider.NewRemoteOK(cfg))
	}
	if config.Providers.WeWorkRemotely {
		providers = append(providers, provider.NewWeWorkRemotely(cfg))
	}
	return providers
}

// openSinks connects the persistence sink and the run lock. Both are
// optional: a missing DSN only disables that sink.
func openSinks(ctx context.Context, config *Config, logger *zap.Logger) (*store.Store, *store.RunLock) {
	var st *store.Store
	databaseURL, err := secrets.Load(secrets.Source{
		Name:  "database url",
		Value: config.DatabaseURL,
		File:  config.DatabaseURLFile,
	})
	if err != nil {
		logger.Info("persistence disabled", zap.Error(err))
	} else {
		st, err = store.Open(ctx, databaseURL)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		if err := st.EnsureSchema(ctx); err != nil {
			logger.Fatal("ensuring schema", zap.Error(err))
		}
	}

	var lock *store.RunLock
	redisURL, err := secrets.Load(secrets.Source{
		Name:  "redis url",
		Value: config.RedisURL,
		File:  config.RedisURLFile,
	})
	if err != nil {
		logger.Info("run lock disabled", zap.Error(err))
	} else {
		rdb, err := store.NewRedisClient(ctx, redisURL)
		if err != nil {
			logger.Fatal("connecting to redis", zap.Error(err))
		}
		lock = store.NewRunLock(rdb, runLockTTL)
	}

	return st, lock
}

func lowered(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
