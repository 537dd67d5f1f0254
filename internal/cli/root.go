package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rohmanhakim/jsxtree/internal/build"
	"github.com/rohmanhakim/jsxtree/internal/config"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/pipeline"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const appName = "jsxtree"

var (
	cfgFile          string
	outputFormat     string
	outputDir        string
	dryRun           bool
	maxDepth         int
	blacklistedTags  []string
	blacklistedAttrs []string
	bindings         []string
	noWrapper        bool
	wrapperClass     string
	strictHTML       bool
	lenientHTML      bool
	hashAlgo         string
	verbose          bool
)

// parseBindings converts repeated name=value flags into a bindings map.
// Values are decoded as YAML scalars or flow collections, so numbers,
// booleans, [lists] and {maps} keep their type; anything else is a string.
func parseBindings(raw []string) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: binding %q must look like name=value", config.ErrInvalidConfig, entry)
		}
		out[name] = decodeBindingValue(value)
	}
	return out, nil
}

func decodeBindingValue(value string) any {
	var decoded any
	if err := yaml.Unmarshal([]byte(value), &decoded); err != nil || decoded == nil {
		return value
	}
	switch decoded.(type) {
	case map[string]any, []any:
		// "a: b" is a YAML mapping too; only explicit flow collections count
		trimmed := strings.TrimSpace(value)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return value
		}
	}
	return decoded
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Compile JSX-like markup into a sanitized render tree.",
	Long: `jsxtree compiles HTML-like markup with custom tags and {expression}
attributes into a filtered tree of render instructions.

Blacklisted tags and attributes (script and on* handlers always) are removed,
registered component names become component nodes, and the result is written
as a JSON tree, rendered HTML or Markdown with YAML frontmatter.`,
	SilenceUsage: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile markup files (standard input when none are given).",
	Long: `compile reads each file, compiles it and writes the result to the output
directory as <hash>.<ext>, where hash is derived from the input path.

Files ending in .html or .htm are parsed with the lenient HTML5 grammar;
.md files are rendered from Markdown first. Everything else is JSX.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		return runCompile(cfg, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Summary(appName))
	},
}

func runCompile(cfg config.Config, paths []string, stdin io.Reader, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	recorder := metadata.NewRecorder(logger)

	p, perr := pipeline.NewPipeline(cfg, recorder, recorder, logger, stdin, build.FullVersion())
	if perr != nil {
		return perr
	}

	execution, err := p.Execute(paths)
	for _, result := range execution.Results {
		switch {
		case result.Err != nil:
			fmt.Fprintf(stderr, "%s: %v\n", result.SourcePath, result.Err)
		case cfg.DryRun():
			// nothing is written, so the document goes to stdout
			stdout.Write(result.Doc.Content())
			if len(execution.Results) > 1 {
				fmt.Fprintln(stdout)
			}
		default:
			fmt.Fprintf(stdout, "%s -> %s\n", result.SourcePath, result.Write.Path())
		}
	}
	if errors.Is(err, pipeline.ErrFilesFailed) {
		return fmt.Errorf("%d of %d inputs failed", execution.Failed(), len(execution.Results))
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteArgs runs the root command with explicit arguments and streams.
func ExecuteArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (.json, .yaml, .yml or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every diagnostic, including omissions")

	flags := compileCmd.Flags()
	flags.StringVar(&outputFormat, "format", "", "output format: json, html or markdown (default json)")
	flags.StringVar(&outputDir, "output-dir", "", "root output directory (default output)")
	flags.BoolVar(&dryRun, "dry-run", false, "compile without writing; print the documents to stdout")
	flags.IntVar(&maxDepth, "max-depth", 0, "maximum element nesting (default 256)")
	flags.StringArrayVar(&blacklistedTags, "blacklist-tag", []string{}, "tag name or /regexp/ to remove (can be repeated)")
	flags.StringArrayVar(&blacklistedAttrs, "blacklist-attr", []string{}, "attribute name or /regexp/ to remove (can be repeated)")
	flags.StringArrayVar(&bindings, "binding", []string{}, "default prop as name=value (can be repeated)")
	flags.BoolVar(&noWrapper, "no-wrapper", false, "do not wrap rendered HTML in a container element")
	flags.StringVar(&wrapperClass, "wrapper-class", "", "class of the container element (default jsx-parser)")
	flags.BoolVar(&strictHTML, "strict-html", false, "sanitize rendered HTML with an allow-list policy")
	flags.BoolVar(&lenientHTML, "lenient-html", false, "parse every input with the HTML5 algorithm")
	flags.StringVar(&hashAlgo, "hash-algo", "", "hash for filenames and fingerprints: blake3 or sha256 (default blake3)")
}

// InitConfig builds the config from the config file and flags, exiting on error.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds the config, returning any errors. A config file,
// when given, is the base; flags that are set override its values.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = cfg.ToBuilder()
	}

	if outputFormat != "" {
		configBuilder = configBuilder.WithOutputFormat(normalize.Format(outputFormat))
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if maxDepth > 0 {
		configBuilder = configBuilder.WithMaxDepth(maxDepth)
	}

	if len(blacklistedTags) > 0 {
		configBuilder = configBuilder.WithBlacklistedTags(append(configBuilder.BlacklistedTags(), blacklistedTags...))
	}

	if len(blacklistedAttrs) > 0 {
		configBuilder = configBuilder.WithBlacklistedAttrs(append(configBuilder.BlacklistedAttrs(), blacklistedAttrs...))
	}

	if len(bindings) > 0 {
		parsed, err := parseBindings(bindings)
		if err != nil {
			return config.Config{}, err
		}
		for name, value := range parsed {
			configBuilder = configBuilder.WithBinding(name, value)
		}
	}

	if noWrapper {
		configBuilder = configBuilder.WithRenderInWrapper(false)
	}

	if wrapperClass != "" {
		configBuilder = configBuilder.WithWrapperClass(wrapperClass)
	}

	if strictHTML {
		configBuilder = configBuilder.WithStrictHTML(true)
	}

	if lenientHTML {
		configBuilder = configBuilder.WithLenientHTML(true)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	outputFormat = ""
	outputDir = ""
	dryRun = false
	maxDepth = 0
	blacklistedTags = []string{}
	blacklistedAttrs = []string{}
	bindings = []string{}
	noWrapper = false
	wrapperClass = ""
	strictHTML = false
	lenientHTML = false
	hashAlgo = ""
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputFormatForTest(format string) {
	outputFormat = format
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetMaxDepthForTest(depth int) {
	maxDepth = depth
}

func SetBlacklistedTagsForTest(patterns []string) {
	blacklistedTags = patterns
}

func SetBlacklistedAttrsForTest(patterns []string) {
	blacklistedAttrs = patterns
}

func SetBindingsForTest(raw []string) {
	bindings = raw
}

func SetNoWrapperForTest(disable bool) {
	noWrapper = disable
}

func SetStrictHTMLForTest(strict bool) {
	strictHTML = strict
}

func SetLenientHTMLForTest(lenient bool) {
	lenientHTML = lenient
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}
