package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/lattice-paths/internal/catalog"
	"github.com/kingrea/lattice-paths/internal/config"
	"github.com/kingrea/lattice-paths/internal/engine"
	"github.com/kingrea/lattice-paths/internal/logging"
	"github.com/kingrea/lattice-paths/internal/objective"
)

// cli holds the state shared by every subcommand.
type cli struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	profilePath string
	sets        keyValueFlag
	logLevel    string
	logFile     string
	verbose     bool

	logger *zap.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "pathseq",
		Short: "Sequence learning objectives into personalized learning paths",
		Long: `pathseq orders learning objectives so prerequisites come first, difficulty
ramps gradually, cognitive load stays under a ceiling with reviews inserted
where needed, and the result is adapted to a learner profile.

Catalogs are YAML or JSON files holding an id, the objectives and an optional
learner profile. A bare name is also looked up in the catalogs/ directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "",
		fmt.Sprintf("engine configuration file (default ./%s when present)", config.DefaultFileName))
	flags.Var(&c.sets, "set", fmt.Sprintf("configuration override (key=value, repeatable; keys: %s)", strings.Join(config.Keys(), ", ")))
	flags.StringVarP(&c.profilePath, "profile", "p", "", "learner profile file replacing the catalog's profile")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFile, "log-file", "", "also append logs to this file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging with the console encoder")

	rootCmd.AddCommand(newOptimizeCmd(c))
	rootCmd.AddCommand(newValidateCmd(c))
	rootCmd.AddCommand(newBrowseCmd(c))
	rootCmd.AddCommand(newConfigCmd(c))
	return rootCmd
}

func (c *cli) setupLogger() error {
	level := c.logLevel
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		File:        c.logFile,
		Development: c.verbose,
	})
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

func (c *cli) engine(parallel int) *engine.Engine {
	return engine.New(engine.WithLogger(c.logger), engine.WithParallelism(parallel))
}

// loadConfig reads the configuration file (or defaults) and applies --set
// overrides.
func (c *cli) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if info, err := os.Stat(config.DefaultFileName); err == nil && !info.IsDir() {
			path = config.DefaultFileName
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if len(c.sets) == 0 {
		return cfg, nil
	}
	return cfg.ApplyOverrides(c.sets)
}

// loadProfile reads the --profile file, if any, normalized like catalog
// profiles.
func (c *cli) loadProfile() (*objective.Profile, error) {
	if c.profilePath == "" {
		return nil, nil
	}
	profile, err := catalog.LoadProfile(c.profilePath)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// loadCatalog accepts a file path or a name inside the catalogs directory.
func loadCatalog(arg string) (catalog.Document, error) {
	doc, err := catalog.LoadFile(arg)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return doc, err
	}
	if strings.ContainsRune(arg, os.PathSeparator) {
		return catalog.Document{}, err
	}
	return catalog.LoadRelative("", arg)
}

// buildRequest builds the engine request for one catalog argument.
func buildRequest(arg string, cfg config.Config, profile *objective.Profile) (engine.Request, error) {
	doc, err := loadCatalog(arg)
	if err != nil {
		return engine.Request{}, err
	}
	if profile == nil {
		profile = doc.Profile
	}
	return engine.Request{
		ID:         doc.ID,
		Objectives: doc.Objectives,
		Profile:    profile,
		Config:     cfg,
	}, nil
}

func (c *cli) requests(args []string) ([]engine.Request, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	profile, err := c.loadProfile()
	if err != nil {
		return nil, err
	}
	reqs := make([]engine.Request, 0, len(args))
	for _, arg := range args {
		req, err := buildRequest(arg, cfg, profile)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective engine configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(c.out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
