// Package cli implements the passgen command line front end.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
)

type options struct {
	configPath string
	length     int
	special    bool
	alphabet   string
	count      int
	output     string
	color      string
	debug      bool

	cfg *config.CLIConfig
}

// NewRootCommand builds the passgen command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Generate random passwords",
		Long: `Generate random passwords from the alphanumeric alphabet (62 characters)
or, with --special, from the alphanumeric alphabet extended with 31 symbols.`,
		Example: `passgen
passgen -l 32 -s
passgen -l 8 -c 5 -o table`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.generate(cmd.Context(), cmd.OutOrStdout())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML file with default settings")
	pf.StringVar(&opts.color, "color", "auto", "colorize table output: auto, yes or no")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	f := cmd.Flags()
	f.IntVarP(&opts.length, "length", "l", 16, "number of characters per password")
	f.BoolVarP(&opts.special, "special", "s", false, "include special characters")
	f.StringVarP(&opts.alphabet, "alphabet", "a", "", "alphabet name: alphanumeric or alphanumeric-symbols (overrides --special)")
	f.IntVarP(&opts.count, "count", "c", 1, "number of passwords to generate")
	f.StringVarP(&opts.output, "output", "o", "raw", "output format: raw, table or json")

	cmd.AddCommand(newAlphabetsCommand(opts))

	return cmd
}

// prepare configures logging and applies file defaults to flags the user did not set.
func (o *options) prepare(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	o.cfg = config.DefaultCLIConfig()
	if o.configPath != "" {
		cfg, err := config.LoadCLIConfig(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
		slog.Debug("using configuration file", "path", o.configPath)
	}
	if err := o.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	d := o.cfg.Defaults
	if !flags.Changed("length") && flags.Lookup("length") != nil {
		o.length = d.Length
	}
	if !flags.Changed("special") && flags.Lookup("special") != nil {
		o.special = d.IncludeSpecialCharacters
	}
	if !flags.Changed("alphabet") && flags.Lookup("alphabet") != nil {
		o.alphabet = d.Alphabet
	}
	if !flags.Changed("count") && flags.Lookup("count") != nil {
		o.count = d.Count
	}
	if !flags.Changed("output") && flags.Lookup("output") != nil {
		o.output = d.Output
	}
	if !flags.Changed("color") {
		o.color = d.Color
	}

	return nil
}

func (o *options) generate(ctx context.Context, out io.Writer) error {
	switch o.output {
	case "raw", "table", "json":
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
	if o.count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", crypto.ErrInvalidArgument, o.count)
	}

	limits := service.DefaultLimits()
	limits.DefaultLength = o.cfg.Defaults.Length
	limits.MaxLength = o.cfg.MaxLength
	limits.MaxCount = o.cfg.MaxCount
	svc := service.NewGeneratorService(nil, limits)

	length := o.length
	resp, err := svc.Generate(ctx, 0, model.GenerateRequest{
		Length:                   &length,
		IncludeSpecialCharacters: o.special,
		Alphabet:                 o.alphabet,
		Count:                    o.count,
	})
	if err != nil {
		return err
	}

	slog.Debug("generated passwords", "count", o.count, "length", resp.Length, "alphabet", resp.Alphabet)

	passwords := resp.Passwords
	if passwords == nil {
		passwords = []string{resp.Password}
	}

	switch o.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "table":
		t := newTable(out, o.color)
		t.AppendHeader(table.Row{"#", "Password", "Length", "Alphabet"})
		for i, p := range passwords {
			t.AppendRow(table.Row{i + 1, p, len(p), resp.Alphabet})
		}
		t.Render()
		return nil
	}

	for _, p := range passwords {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}

func newAlphabetsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "alphabets",
		Short: "List the available alphabets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable(cmd.OutOrStdout(), opts.color)
			t.AppendHeader(table.Row{"Name", "Size", "Characters"})
			for _, a := range crypto.Alphabets {
				t.AppendRow(table.Row{a.String(), a.Size(), a.Chars()})
			}
			t.Render()
			return nil
		},
	}
}

// ExitCode maps an error returned by the command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, crypto.ErrRandomSourceUnavailable):
		return 3
	case errors.Is(err, crypto.ErrInvalidArgument):
		return 2
	}
	return 1
}
