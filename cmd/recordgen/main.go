// Package main provides the CLI entrypoint for recordgen.
//
// recordgen is a record synthesis tool that:
//   - Loads declarative record schemas (fields, kinds, defaults, factories) from YAML
//   - Validates them with full diagnostics
//   - Compiles them into in-memory record types for inspection
//   - Generates Go structs with constructor, String, Equal, and Compare methods
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"recordgen/internal/gen"
	"recordgen/internal/schema"
	"recordgen/internal/synth"
)

var (
	// Global flags
	verbose bool

	// gen flags
	outDir  string
	pkgName string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recordgen",
	Short: "recordgen - synthesize record types from declarative schemas",
	Long: `recordgen takes a YAML schema of record declarations (named, typed
fields with optional defaults and default factories) and synthesizes
construction, representation, equality, and ordering behavior, either as
in-memory record types or as generated Go source.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// checkCmd validates a schema file and prints diagnostics.
var checkCmd = &cobra.Command{
	Use:   "check [schema.yaml]",
	Short: "Validate a record schema file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// genCmd generates Go source from a schema file.
var genCmd = &cobra.Command{
	Use:   "gen [schema.yaml]",
	Short: "Generate Go record types from a schema file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

// showCmd compiles a schema and prints each record with a sample representation.
var showCmd = &cobra.Command{
	Use:   "show [schema.yaml]",
	Short: "Show compiled records from a schema file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := schema.LoadFile(args[0])
	if err != nil {
		return err
	}

	diags := schema.Validate(f)

	for _, d := range diags.Infos {
		fmt.Println("info:", d.String())
	}

	for _, d := range diags.Warnings {
		fmt.Println("warning:", d.String())
	}

	for _, d := range diags.Errors {
		fmt.Println("error:", d.String())
	}

	if diags.HasErrors() {
		return fmt.Errorf("schema has %d error(s)", len(diags.Errors))
	}

	logger.Info("schema valid",
		zap.String("file", args[0]),
		zap.Int("records", len(f.Records)),
		zap.Int("warnings", len(diags.Warnings)))

	return nil
}

func runGen(cmd *cobra.Command, args []string) error {
	specs, err := loadSpecs(args[0])
	if err != nil {
		return err
	}

	config := gen.DefaultGeneratorConfig()
	config.PackageName = pkgName
	config.OutputDir = outDir

	files, err := gen.NewGenerator(config).Generate(specs)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, outDir); err != nil {
		return err
	}

	for _, file := range files {
		logger.Info("generated", zap.String("file", file.Filename))
	}

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	f, err := schema.LoadFile(args[0])
	if err != nil {
		return err
	}

	reg := synth.NewRegistry()

	diags := reg.LoadFile(f)
	if err := diags.Error(); err != nil {
		return err
	}

	records, err := reg.CompileAll()
	if err != nil {
		return err
	}

	for _, name := range reg.Names() {
		rec := records[name]
		spec := rec.Spec()

		fmt.Printf("%s (immutable=%t, ordered=%t)\n", name, spec.Immutable, spec.Ordered)

		hasRequired := false

		for _, decl := range spec.Fields {
			required := ""
			if decl.Required() {
				required = " (required)"
				hasRequired = true
			}

			fmt.Printf("  %s: %s%s\n", decl.Name, decl.Type, required)
		}

		// A sample only exists when every field can bind without input.
		if !hasRequired {
			inst, err := rec.New(nil)
			if err != nil {
				return err
			}

			fmt.Printf("  sample: %s\n", inst)
		}
	}

	return nil
}

// loadSpecs loads, validates, and converts a schema file into specs for
// code generation.
func loadSpecs(path string) ([]*schema.Spec, error) {
	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	reg := synth.NewRegistry()

	diags := reg.LoadFile(f)
	if err := diags.Error(); err != nil {
		return nil, err
	}

	for _, d := range diags.Warnings {
		logger.Warn(d.Message, zap.String("record", d.Record), zap.String("field", d.Field))
	}

	specs := make([]*schema.Spec, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		specs = append(specs, reg.Spec(name))
	}

	return specs, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "debug", "d", false, "enable debug logging")

	genCmd.Flags().StringVar(&outDir, "out", "./generated", "output directory")
	genCmd.Flags().StringVar(&pkgName, "pkg", "records", "generated package name")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
