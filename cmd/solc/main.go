// Command solc compiles a single source file through the preprocessor,
// lexer, parser, type analyzer and IR emitter, writing the resulting
// textual IR alongside the input file (SPEC_FULL.md §12). It takes
// exactly one positional argument, the root source path, and no flags
// of its own: options are read from an optional solc.config.yaml next
// to that file instead (SPEC_FULL.md §10), matching spec.md §6.1's
// explicit "no flags" stance.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solalang/solc/internal/clilog"
	"github.com/solalang/solc/internal/config"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/emit"
	"github.com/solalang/solc/internal/ir/textual"
	"github.com/solalang/solc/internal/lexer"
	"github.com/solalang/solc/internal/parser"
	"github.com/solalang/solc/internal/preprocess"
	"github.com/solalang/solc/internal/types"
)

var rootCmd = &cobra.Command{
	Use:          "solc <source-file>",
	Short:        "solc",
	Long:         "solc compiles a single .sol-like source file to a textual IR file.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	rootPath := args[0]
	log := clilog.New()

	dir := filepath.Dir(rootPath)
	cfg, err := config.Load(dir)
	if err != nil {
		diag.Render(os.Stderr, diag.Diagnostic{Severity: diag.Fatal, LongMsg: fmt.Sprintf("reading %s: %s", config.FileName, err)})
		return err
	}

	sink := diag.NewSink(os.Stderr)

	stage := clilog.Stage(log, "preprocess")
	pp := preprocess.New(sink, cfg)
	stream, err := pp.Run(rootPath)
	if err != nil {
		stage.WithError(err).Error("preprocess failed")
		return err
	}

	stage = clilog.Stage(log, "lex")
	lx := lexer.New(stream, sink)
	tokens := lx.Tokenize()
	if sink.HasFatal() {
		stage.Error("lex reported fatal diagnostics")
		os.Exit(1)
	}

	stage = clilog.Stage(log, "parse")
	ps := parser.New(tokens, sink)
	unit := ps.ParseSourceUnit()
	if sink.HasFatal() {
		stage.Error("parse reported fatal diagnostics")
		os.Exit(1)
	}

	stage = clilog.Stage(log, "analyze")
	an := types.New(sink)
	an.Analyze(unit)
	if sink.HasFatal() {
		stage.Error("type analysis reported fatal diagnostics")
		os.Exit(1)
	}

	stage = clilog.Stage(log, "emit")
	irCtx := textual.NewContext()
	moduleName := strings.TrimSuffix(filepath.Base(rootPath), filepath.Ext(rootPath))
	_, builder := irCtx.NewModule(moduleName)
	emitter := emit.New(builder, sink)
	emitter.EmitSourceUnit(unit)
	if sink.HasFatal() {
		stage.Error("emit reported fatal diagnostics")
		os.Exit(1)
	}

	outPath := strings.TrimSuffix(rootPath, filepath.Ext(rootPath)) + ".ll"
	if err := os.WriteFile(outPath, []byte(builder.Serialize()), 0644); err != nil {
		stage.WithError(err).Error("writing output file failed")
		return err
	}
	stage.WithField("output", outPath).Info("stage finished")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
