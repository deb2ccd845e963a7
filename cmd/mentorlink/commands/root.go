package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strrl/mentorlink/internal/advisor"
	"github.com/strrl/mentorlink/internal/auth"
	"github.com/strrl/mentorlink/internal/config"
	"github.com/strrl/mentorlink/internal/db"
	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/internal/tui"
	"github.com/strrl/mentorlink/pkg/models"
)

// app is the state shared by every command of one invocation
type app struct {
	cfgFile string
	verbose bool
	guest   bool

	viper  *viper.Viper
	cfg    *config.Config
	logger *zap.Logger

	now       func() time.Time
	generator advisor.Generator // replaces the Gemini client when set
}

func newApp() *app {
	return &app{
		viper: viper.New(),
		now:   time.Now,
	}
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mentorlink",
		Short: "Browse mentors and your mentorship sessions",
		Long: `mentorlink is a TUI application for finding mentors and keeping track of
mentorship sessions. Without a subcommand it signs you in and opens the dashboard.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./mentorlink.yaml)")
	flags.String("sessions", "", "newline-delimited JSON file with sessions (default: built-in demo schedule)")
	flags.String("mentors", "", "YAML file with the mentor directory (default: built-in directory)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	_ = a.viper.BindPFlag("sessions_file", flags.Lookup("sessions"))
	_ = a.viper.BindPFlag("mentors_file", flags.Lookup("mentors"))

	rootCmd.Flags().BoolVar(&a.guest, "guest", false, "skip the sign-in prompt and use the guest account")

	rootCmd.AddCommand(newCalendarCommand(a))
	rootCmd.AddCommand(newSessionsCommand(a))
	rootCmd.AddCommand(newMentorsCommand(a))
	rootCmd.AddCommand(newMatchCommand(a))
	rootCmd.AddCommand(newGrowthPathCommand(a))
	rootCmd.AddCommand(newRegisterCommand(a))
	rootCmd.AddCommand(newLoginCommand(a))
	rootCmd.AddCommand(newDebugCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	a.logger.Debug("configuration loaded",
		zap.String("model", cfg.Model),
		zap.String("sessions_file", cfg.SessionsFile),
		zap.String("mentors_file", cfg.MentorsFile),
		zap.Bool("api_key_set", cfg.APIKey != ""))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if err := db.Close(); err != nil && a.logger != nil {
		a.logger.Warn("failed to close DuckDB", zap.Error(err))
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		level = "debug"
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = parsed
	return zapCfg.Build()
}

func (a *app) source(logger *zap.Logger) schedule.Source {
	return schedule.Source{Path: a.cfg.SessionsFile, Logger: logger}
}

func (a *app) loadSessions(ctx context.Context) ([]models.Session, error) {
	sessions, err := a.source(a.logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	return sessions, nil
}

func (a *app) loadMentors() ([]models.Mentor, error) {
	return directory.Load(a.cfg.MentorsFile)
}

func (a *app) newAdvisor(ctx context.Context) (*advisor.Advisor, error) {
	if a.generator != nil {
		return advisor.NewWithGenerator(a.generator, a.cfg.Model, a.logger), nil
	}
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set GEMINI_API_KEY or api_key in mentorlink.yaml")
	}
	return advisor.New(ctx, a.cfg.APIKey, a.cfg.Model, a.logger)
}

// requestContext bounds one advisor round trip
func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	store, err := auth.NewStore(a.logger)
	if err != nil {
		return err
	}

	var user models.User
	if a.guest {
		user, err = store.Login(auth.GuestEmail, auth.GuestPassword)
	} else {
		user, err = a.signIn(cmd, store)
	}
	if err != nil {
		return err
	}
	a.logger.Info("signed in", zap.String("user", user.ID), zap.String("role", string(user.Role)))

	mentors, err := a.loadMentors()
	if err != nil {
		return err
	}

	opts := tui.Options{
		User:    user,
		Mentors: mentors,
		// the alt screen owns the terminal while the TUI runs
		Source: a.source(zap.NewNop()),
		Now:    a.now,
	}

	if adv, err := a.newAdvisor(cmd.Context()); err != nil {
		a.logger.Info("AI matching disabled", zap.Error(err))
	} else {
		opts.Advisor = adv
	}

	if err := tui.ShowTUI(opts); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
