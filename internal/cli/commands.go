package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"grammarguide/internal/apiclient"
	"grammarguide/internal/config"
	"grammarguide/internal/db"
	"grammarguide/internal/guide"
	"grammarguide/internal/logger"
	"grammarguide/internal/network"
	"grammarguide/internal/preference"
	"grammarguide/internal/repository"
)

// app is the wiring shared by every client command.
type app struct {
	client *apiclient.Client
	state  *sqlx.DB
	themes *preference.ThemeStore
	cache  *guide.Cache
	shell  *guide.Shell
}

func newApp(ctx context.Context, configFile string, logOut io.Writer) (*app, error) {
	cfg, err := config.LoadClient(configFile)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New(logOut, logger.ParseLevel(cfg.LogLevel), logger.FormatText))

	factory, err := network.NewClientFactory(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	client := apiclient.New(cfg.API.URL, factory.NewHTTPClient(cfg.API.Timeout))
	logger.Debug("api client ready", "module", "cli", "action", "init", "resource", "apiclient", "result", "ok", "api_url", cfg.API.URL, "proxied", factory.ProxyURL() != "")

	state, err := db.OpenLocal(ctx, cfg.StateDB)
	if err != nil {
		return nil, err
	}
	themes := preference.NewThemeStore(repository.NewSettingsRepository(state))
	cache := guide.NewCache()

	return &app{
		client: client,
		state:  state,
		themes: themes,
		cache:  cache,
		shell:  guide.NewShell(ctx, cache, client, themes),
	}, nil
}

func (a *app) Close() error {
	return a.state.Close()
}

// NewRootCommand builds the grammar client command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "grammar",
		Short:         "Browse and add English grammar reference entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./grammar.yaml or $HOME/.config/grammar/grammar.yaml)")

	withApp := func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return run(cmd, a, args)
		}
	}

	root.AddCommand(
		newListCommand(withApp),
		newAddCommand(withApp),
		newThemeCommand(withApp),
		newShellCommand(withApp),
	)
	return root
}

type appRunner func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func newListCommand(withApp appRunner) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list [section]",
		Short: "Show the entries of a section",
		Long:  "Show the entries of a section. Sections: " + sectionKeys() + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			section := guide.SectionTenses
			if len(args) == 1 {
				section = args[0]
			}
			if err := a.shell.Select(section); err != nil {
				return err
			}
			if err := a.cache.Load(cmd.Context(), a.client); err != nil {
				return err
			}
			a.shell.SetSearch(search)
			NewRenderer(cmd.OutOrStdout(), outputWidth(cmd.OutOrStdout())).Section(a.shell)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show entries whose title or definition contains this text")
	return cmd
}

func newAddCommand(withApp appRunner) *cobra.Command {
	var (
		draft        guide.Draft
		examplesList []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new entry",
		Long: `Add a new entry. Examples can be given as one --examples value with
lines separated by \n, or as repeated --example flags.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			examples := strings.ReplaceAll(draft.Examples, `\n`, "\n")
			if len(examplesList) > 0 {
				examples = strings.Join(append([]string{examples}, examplesList...), "\n")
			}

			form := a.shell.Form()
			for field, value := range map[guide.Field]string{
				guide.FieldCategory:   draft.Category,
				guide.FieldTitle:      draft.Title,
				guide.FieldDefinition: draft.Definition,
				guide.FieldExamples:   examples,
				guide.FieldNotes:      draft.Notes,
			} {
				if err := form.Set(field, value); err != nil {
					return err
				}
			}

			r := NewRenderer(cmd.OutOrStdout(), outputWidth(cmd.OutOrStdout()))
			entry, err := a.shell.Submit(cmd.Context())
			r.Status(a.shell.Theme(), form.Status())
			if err != nil {
				return errors.New(form.Status().Message)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			r.Entry(a.shell.Theme(), entry)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&draft.Category, "category", "c", "", "category: "+categoryList())
	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "title")
	cmd.Flags().StringVarP(&draft.Definition, "definition", "d", "", "definition")
	cmd.Flags().StringVar(&draft.Examples, "examples", "", `examples separated by \n`)
	cmd.Flags().StringArrayVarP(&examplesList, "example", "e", nil, "an example (repeatable)")
	cmd.Flags().StringVarP(&draft.Notes, "notes", "n", "", "notes")
	return cmd
}

func newThemeCommand(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			theme := a.shell.Theme()
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				var err error
				if theme, err = a.shell.ToggleTheme(cmd.Context()); err != nil {
					return err
				}
			default:
				parsed, err := guide.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if parsed != theme {
					if theme, err = a.shell.ToggleTheme(cmd.Context()); err != nil {
						return err
					}
				}
			}
			PaletteFor(theme).Success.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		}),
	}
}

func newShellCommand(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive guide",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			_ = a.cache.Load(cmd.Context(), a.client)
			RunShell(cmd.Context(), a.shell, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), outputWidth(cmd.OutOrStdout()))
			return nil
		}),
	}
}

func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return TerminalWidth(int(f.Fd()))
	}
	return defaultWidth
}

func sectionKeys() string {
	keys := make([]string, 0, len(guide.Sections))
	for _, s := range guide.Sections {
		if !s.IsForm() {
			keys = append(keys, s.Key)
		}
	}
	return strings.Join(keys, ", ")
}

func categoryList() string {
	var names []string
	for _, s := range guide.Sections {
		if s.Category != "" {
			names = append(names, string(s.Category))
		}
	}
	return strings.Join(names, ", ")
}
