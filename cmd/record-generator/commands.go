package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/gen"
	"record-generator/internal/plan"
	"record-generator/internal/schema"
)

// errOutOfDate is returned by check when generated files need regenerating.
var errOutOfDate = errors.New("generated files are out of date")

// generateFlags binds the flags shared by gen, check and inspect.
type generateFlags struct {
	file     string
	out      string
	prune    bool
	debugDir string
}

func (f *generateFlags) register(cmd *cobra.Command, withWrite bool) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML declaration file (default from config: records.yaml)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (default: the record package directory)")

	if withWrite {
		cmd.Flags().BoolVar(&f.prune, "prune", false, "Remove generated files no record produces any more")
		cmd.Flags().StringVar(&f.debugDir, "debug-dir", "", "Write unformatted output here when formatting fails")
	}
}

// apply overrides cfg with the flags set on cmd.
func (f *generateFlags) apply(cmd *cobra.Command, cfg GenerateConfig) GenerateConfig {
	if cmd.Flags().Changed("file") {
		cfg.File = f.file
	}

	if cmd.Flags().Changed("out") {
		cfg.Out = f.out
	}

	if cmd.Flags().Changed("prune") {
		cfg.Prune = f.prune
	}

	if cmd.Flags().Changed("debug-dir") {
		cfg.DebugDir = f.debugDir
	}

	return cfg
}

func newGenCmd(a *app) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate record constructors from a declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := flags.apply(cmd, a.cfg.Generate)

			p, files, err := a.generate(gc)
			if err != nil {
				return err
			}

			out := outputDir(gc, p)
			if err := gen.WriteFiles(files, out); err != nil {
				return err
			}

			for _, f := range files {
				a.logger.Info("generated", zap.String("file", filepath.Join(out, f.Filename)))
			}

			if !gc.Prune {
				return nil
			}

			removed, err := gen.Prune(files, out, gen.Header(gc.Tool))
			for _, name := range removed {
				a.logger.Info("removed stale file", zap.String("file", filepath.Join(out, name)))
			}

			return err
		},
	}

	flags.register(cmd, true)

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate declarations and verify generated files are up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := flags.apply(cmd, a.cfg.Generate)

			p, files, err := a.generate(gc)
			if err != nil {
				return err
			}

			out := outputDir(gc, p)

			drifts, err := gen.Compare(files, out, gen.Header(gc.Tool))
			if err != nil {
				return err
			}

			for _, d := range drifts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", filepath.Join(out, d.Filename), d.Drift)
			}

			if len(drifts) > 0 {
				return fmt.Errorf("%d file(s): %w", len(drifts), errOutOfDate)
			}

			a.logger.Info("generated files are up to date", zap.Int("records", len(p.Records)))

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved generation plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := flags.apply(cmd, a.cfg.Generate)

			p, err := a.resolve(gc)
			if err != nil {
				return err
			}

			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
			dumper.Fdump(cmd.OutOrStdout(), p)

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	var (
		typeNames []string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "suggest <package>",
		Short: "Draft a declaration file for the structs of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := analyze.NewAnalyzer().
				SkipGenerated(gen.Header(a.cfg.Generate.Tool)).
				LoadPackages(args[0])
			if err != nil {
				return err
			}

			if len(graph.Packages) != 1 {
				return fmt.Errorf("pattern %q matches %d packages, want one", args[0], len(graph.Packages))
			}

			var pkgPath string
			for path := range graph.Packages {
				pkgPath = path
			}

			data, diags := plan.SuggestYAML(graph, pkgPath, typeNames)
			a.report(diags)

			if data == nil {
				return diags.Err()
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			a.logger.Info("wrote suggestions", zap.String("file", out))

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&typeNames, "type", "t", nil, "Struct types to include (default: all)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

// resolve loads the declaration file, analyzes its package and builds the
// generation plan.
func (a *app) resolve(gc GenerateConfig) (*plan.Plan, error) {
	f, err := schema.LoadFile(gc.File)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("loaded declarations",
		zap.String("file", gc.File),
		zap.String("package", f.Package),
		zap.Int("records", len(f.Records)))

	graph, err := analyze.NewAnalyzer().
		WithDir(filepath.Dir(gc.File)).
		SkipGenerated(gen.Header(gc.Tool)).
		LoadPackages(f.Package)
	if err != nil {
		return nil, err
	}

	p, diags := plan.Resolve(f, graph)
	a.report(diags)

	if p == nil {
		return nil, fmt.Errorf("%s: %w", gc.File, diags.Err())
	}

	return p, nil
}

func (a *app) generate(gc GenerateConfig) (*plan.Plan, []gen.GeneratedFile, error) {
	p, err := a.resolve(gc)
	if err != nil {
		return nil, nil, err
	}

	files, err := gen.NewGenerator(gen.GeneratorConfig{Tool: gc.Tool, DebugDir: gc.DebugDir}).Generate(p)
	if err != nil {
		return nil, nil, err
	}

	return p, files, nil
}

// report logs every diagnostic at its severity.
func (a *app) report(d *diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		a.logger.Error(e.Message, diagnosticFields(e)...)
	}

	for _, w := range d.Warnings {
		a.logger.Warn(w.Message, diagnosticFields(w)...)
	}

	for _, i := range d.Infos {
		a.logger.Debug(i.Message, diagnosticFields(i)...)
	}
}

func diagnosticFields(d diagnostic.Diagnostic) []zap.Field {
	fields := []zap.Field{zap.String("code", d.Code)}

	if d.Record != "" {
		fields = append(fields, zap.String("record", d.Record))
	}

	if d.Field != "" {
		fields = append(fields, zap.String("field", d.Field))
	}

	if len(d.Suggestions) > 0 {
		fields = append(fields, zap.Strings("did_you_mean", d.Suggestions))
	}

	return fields
}

func outputDir(gc GenerateConfig, p *plan.Plan) string {
	if gc.Out != "" {
		return gc.Out
	}

	return p.Dir
}
