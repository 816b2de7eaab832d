package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/rescisao/internal/breakeven"
	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/compare"
	"github.com/rgehrsitz/rescisao/internal/config"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/legacy"
	"github.com/rgehrsitz/rescisao/internal/observability"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/rgehrsitz/rescisao/internal/sensitivity"
	"github.com/rgehrsitz/rescisao/internal/server"
	"github.com/rgehrsitz/rescisao/internal/transform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state shared by the subcommands of one invocation
type app struct {
	regulatoryPath string
	logLevel       string
	logger         *zap.Logger
}

func (a *app) rules() (*domain.RegulatoryConfig, error) {
	return config.NewInputParser().LoadRegulatory(a.regulatoryPath)
}

func (a *app) engine() (*calculation.Engine, error) {
	rules, err := a.rules()
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewEngine(rules)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(observability.NewAdapter(a.logger))
	return engine, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "rescisao",
		Short:         "Calculadora de verbas rescisórias (CLT)",
		Long:          "Calcula as verbas rescisórias, INSS e IRRF de um desligamento e registra a memória de cálculo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := observability.NewLogger(observability.Options{
				Level:    a.logLevel,
				Encoding: "console",
				Output:   []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.regulatoryPath, "regulatory", "", "Regulatory config file (default: embedded 2025 tables)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		compareCmd(a),
		breakevenCmd(a),
		sensitivityCmd(a),
		motivosCmd(a),
		convertLegacyCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func calculateCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
		isLegacy  bool
		whatIf    []string
	)
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate a termination settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := output.GetFormatterByName(format)
			if !ok {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.Names())
			}
			in, err := loadInput(args[0], isLegacy, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if in, err = applyWhatIf(in, whatIf, cmd.ErrOrStderr()); err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			result, err := engine.Calculate(*in)
			if err != nil {
				return err
			}

			if outputDir != "" {
				path, err := output.WriteFormatted(f, result, outputDir, output.FileExtension(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Relatório gravado em %s\n", path)
				return nil
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("Output format %v", output.Names()))
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to this directory instead of stdout")
	cmd.Flags().BoolVar(&isLegacy, "legacy", false, "Input uses the legacy add-on shape")
	cmd.Flags().StringArrayVar(&whatIf, "what-if", nil, whatIfUsage)
	return cmd
}

var whatIfUsage = fmt.Sprintf("Apply a transform before calculating, e.g. postpone_termination:days=30 (repeatable; available: %s)",
	strings.Join(transform.NewTransformRegistry().List(), ", "))

// applyWhatIf applies the transform specs to in, writing one note per transform
func applyWhatIf(in *domain.TerminationInput, specs []string, notes io.Writer) (*domain.TerminationInput, error) {
	if len(specs) == 0 {
		return in, nil
	}
	transforms, err := transform.NewTransformRegistry().ParseAll(specs)
	if err != nil {
		return nil, err
	}
	out, err := transform.ApplyTransforms(in, transforms)
	if err != nil {
		return nil, err
	}
	for _, d := range transform.Describe(transforms) {
		fmt.Fprintf(notes, "simulação: %s\n", d)
	}
	return out, nil
}

// loadInput reads a canonical or legacy input; conversion notes go to notes
func loadInput(path string, isLegacy bool, notes io.Writer) (*domain.TerminationInput, error) {
	if !isLegacy {
		return config.NewInputParser().LoadInput(path)
	}
	li, err := legacy.Load(path)
	if err != nil {
		return nil, err
	}
	in, msgs, err := legacy.Convert(li)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		fmt.Fprintf(notes, "nota: %s\n", m)
	}
	return &in, nil
}

func validateCmd(a *app) *cobra.Command {
	var isLegacy bool
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file against the regulatory config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules()
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], isLegacy, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := config.NewInputParser().ValidateInput(in, rules); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo %s válido\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&isLegacy, "legacy", false, "Input uses the legacy add-on shape")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var (
		base     string
		with     string
		format   string
		isLegacy bool
		whatIf   []string
	)
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the settlement of one input under several termination reasons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], isLegacy, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if in, err = applyWhatIf(in, whatIf, cmd.ErrOrStderr()); err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			var alternatives []string
			for _, code := range strings.Split(with, ",") {
				if code = strings.TrimSpace(code); code != "" {
					alternatives = append(alternatives, code)
				}
			}
			compSet, err := compare.NewCompareEngine(engine).Compare(*in, compare.CompareOptions{
				BaseReason:   base,
				Alternatives: alternatives,
			})
			if err != nil {
				return err
			}
			compSet.InputPath = args[0]

			var out string
			switch format {
			case "table", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base reason (default: the input's reason)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated reasons to compare (default: all other reasons)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&isLegacy, "legacy", false, "Input uses the legacy add-on shape")
	cmd.Flags().StringArrayVar(&whatIf, "what-if", nil, whatIfUsage)
	return cmd
}

func breakevenCmd(a *app) *cobra.Command {
	var (
		target      string
		net         string
		matchReason string
		minValue    string
		maxValue    string
		format      string
		isLegacy    bool
		whatIf      []string
	)
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the bonus or salary that brings the settlement to a target net",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}
			goal, constraints, err := breakevenConstraints(net, matchReason, minValue, maxValue)
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], isLegacy, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if in, err = applyWhatIf(in, whatIf, cmd.ErrOrStderr()); err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)

			var result any
			if target == "all" {
				multi, err := solver.SolveAllTargets(cmd.Context(), in, goal, constraints)
				if err != nil {
					return err
				}
				if format == "table" {
					_, err = io.WriteString(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMulti(multi))
					return err
				}
				result = multi
			} else {
				single, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{
					Base:        in,
					Target:      breakeven.SolveTarget(target),
					Goal:        goal,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				if format == "table" {
					_, err = io.WriteString(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(single))
					return err
				}
				result = single
			}
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&target, "target", "bonus", "Value to solve for (bonus, salary, all)")
	cmd.Flags().StringVar(&net, "net", "", "Target net amount")
	cmd.Flags().StringVar(&matchReason, "match-reason", "", "Match the net of this termination reason instead of --net")
	cmd.Flags().StringVar(&minValue, "min", "", "Lower bound of the search")
	cmd.Flags().StringVar(&maxValue, "max", "", "Upper bound of the search")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().BoolVar(&isLegacy, "legacy", false, "Input uses the legacy add-on shape")
	cmd.Flags().StringArrayVar(&whatIf, "what-if", nil, whatIfUsage)
	cmd.MarkFlagsMutuallyExclusive("net", "match-reason")
	cmd.MarkFlagsOneRequired("net", "match-reason")
	return cmd
}

func sensitivityCmd(a *app) *cobra.Command {
	var (
		params   []string
		steps    int
		format   string
		isLegacy bool
		whatIf   []string
	)
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Show how the net responds to the termination date, salary and other inputs",
		Long: `Sweep one or more inputs and recalculate the settlement at each point.

Parameters: termination_date (days after the input date), salary, bonus, fgts_balance, dependents.

Examples:
  rescisao sensitivity entrada.yaml --parameter termination_date:0-60:7
  rescisao sensitivity entrada.yaml --parameter salary:3000-4000 --parameter fgts_balance:0-20000 -f csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := sensitivity.NewFormatter(format)
			if err != nil {
				return err
			}
			var parsed []sensitivity.Parameter
			for _, spec := range params {
				p, err := sensitivity.ParseParameter(spec, steps)
				if err != nil {
					return err
				}
				parsed = append(parsed, p)
			}
			in, err := loadInput(args[0], isLegacy, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if in, err = applyWhatIf(in, whatIf, cmd.ErrOrStderr()); err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			multi, err := sensitivity.NewAnalyzer(engine).AnalyzeMultiple(cmd.Context(), in, parsed)
			if err != nil {
				return err
			}
			out, err := formatter.Format(multi)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&params, "parameter", "p", nil, "Parameter sweep as name:min-max[:steps] (repeatable)")
	cmd.Flags().IntVar(&steps, "steps", 5, "Default number of points per sweep")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&isLegacy, "legacy", false, "Input uses the legacy add-on shape")
	cmd.Flags().StringArrayVar(&whatIf, "what-if", nil, whatIfUsage)
	_ = cmd.MarkFlagRequired("parameter")
	return cmd
}

// breakevenConstraints turns the flag values into a goal and its constraints
func breakevenConstraints(net, matchReason, minValue, maxValue string) (breakeven.Goal, breakeven.Constraints, error) {
	var c breakeven.Constraints
	parse := func(flag, s string) (*decimal.Decimal, error) {
		if s == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
		}
		return &d, nil
	}
	var err error
	if c.Min, err = parse("min", minValue); err != nil {
		return "", c, err
	}
	if c.Max, err = parse("max", maxValue); err != nil {
		return "", c, err
	}
	if matchReason != "" {
		c.MatchReason = strings.ToUpper(matchReason)
		return breakeven.GoalMatchReason, c, nil
	}
	if c.TargetNet, err = parse("net", net); err != nil {
		return "", c, err
	}
	return breakeven.GoalMatchNet, c, nil
}

func motivosCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "motivos",
		Short: "List the termination reasons of the regulatory config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules()
			if err != nil {
				return err
			}
			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rules.Reasons)
			case "table", "":
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("CÓDIGO", "CATEGORIA", "DESCRIÇÃO")
				for _, r := range rules.Reasons {
					t.Row(r.Code, r.Category, r.Description)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.Render())
				return nil
			default:
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

func convertLegacyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert-legacy [legacy-file]",
		Short: "Convert a legacy input into the canonical YAML input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], true, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(in); err != nil {
				return fmt.Errorf("failed to encode input: %w", err)
			}
			return enc.Close()
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settlement API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.LoadConfig()
			if addr != "" {
				cfg.Addr = addr
			}
			if a.regulatoryPath == "" {
				a.regulatoryPath = cfg.RegulatoryFile
			}
			if !cmd.Flags().Changed("log-level") {
				a.logLevel = cfg.LogLevel
			}
			logger, err := observability.NewLogger(observability.Options{Level: a.logLevel, Encoding: "json"})
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			a.logger = logger

			engine, err := a.engine()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           server.New(engine, cfg, logger).Router(),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx := cmd.Context()
			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", zap.String("addr", cfg.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $RESCISAO_ADDR or :8080)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rescisao %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		if calculation.IsClientError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
