package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/buildinfo"
	"github.com/cleared-dev/inkboard/internal/config"
	"github.com/cleared-dev/inkboard/internal/dashboard"
	"github.com/cleared-dev/inkboard/internal/dataset"
	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/log"
	"github.com/cleared-dev/inkboard/internal/render"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	repo    string
	now     string
	months  int
	json    bool
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "inkboard",
		Short:   "Monthly dashboards for a small studio",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.repo, "repo", ".", "project directory")
	flags.StringVar(&opts.now, "now", "", "evaluate as of this instant (RFC3339, YYYY-MM-DD or YYYY-MM)")
	flags.IntVar(&opts.months, "months", 0, "months in the window (default from inkboard.yaml)")
	flags.BoolVar(&opts.json, "json", false, "print JSON rows instead of tables")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	for _, v := range viewCommands {
		rootCmd.AddCommand(newViewCommand(opts, v.name, v.short))
	}
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))

	return rootCmd
}

// session is everything a command needs once flags and config are resolved.
type session struct {
	root   string
	cfg    *config.Config
	logger *log.Logger
	window aggregate.Window
	json   bool
}

func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	root, err := filepath.Abs(o.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	logCfg := log.DefaultConfig()
	logCfg.Writer = cmd.ErrOrStderr()
	if o.verbose {
		logCfg.Level = slog.LevelDebug
	}
	logger := log.New(logCfg)
	log.SetDefault(logger)

	cfg, err := config.LoadRepo(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	loc := cfg.Location()

	nowText := cfg.Dashboard.Now
	if cmd.Flags().Changed("now") {
		nowText = o.now
	}
	now, err := parseNow(nowText, loc)
	if err != nil {
		return nil, err
	}
	if now.IsZero() {
		now = time.Now().In(loc)
	}

	months := cfg.Dashboard.WindowMonths
	if cmd.Flags().Changed("months") {
		months = o.months
	}

	logger.Debug("session opened",
		log.FieldRepo, root,
		log.FieldNow, now.Format(time.RFC3339),
		log.FieldMonth, id.FormatMonthKey(now.Year(), int(now.Month())),
		log.FieldMonths, months,
	)

	return &session{
		root:   root,
		cfg:    cfg,
		logger: logger,
		window: aggregate.Window{Months: months, Now: now, Names: aggregate.NamesFor(cfg.Dashboard.Locale)},
		json:   o.json,
	}, nil
}

// parseNow reads an evaluation instant. A full timestamp is converted to
// loc; a date means midnight of that day in loc; a month key means the
// last instant of that month. Blank returns the zero time.
func parseNow(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	if y, m, err := id.ParseMonthKey(s); err == nil {
		return aggregate.EndOfMonth(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, loc)), nil
	}
	return time.Time{}, fmt.Errorf("invalid --now %q: want RFC3339, YYYY-MM-DD or YYYY-MM", s)
}

func (s *session) dataset() *dataset.Service {
	return dataset.NewService(s.root, s.cfg.Location(), s.logger)
}

func (s *session) records() (dashboard.Records, error) {
	ds, err := s.dataset().Load()
	if err != nil {
		return dashboard.Records{}, fmt.Errorf("loading data: %w", err)
	}
	return dashboard.Records{
		Clients:      ds.Clients,
		Transactions: ds.Transactions,
		Projects:     ds.Projects,
		Appointments: ds.Appointments,
	}, nil
}

func (s *session) printer(cmd *cobra.Command) *render.Printer {
	nums := render.NewNumbers(s.cfg.Dashboard.Locale, s.cfg.Dashboard.Currency)
	return render.NewPrinter(cmd.OutOrStdout(), nums)
}
