package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/pipegraph/pkg/config"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/pipeline"
	"github.com/matzehuels/pipegraph/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	paths        []string // --config, format detected from extension
	pathsTOML    []string // --config-toml
	pathsJSON    []string // --config-json
	pathsYAML    []string // --config-yaml
	dirs         []string // --config-dir
	outputFormat string   // --output-format
}

// configPaths merges every path flag into one ordered list.
func (o graphOpts) configPaths() []config.ConfigPath {
	files := config.MergePathLists(
		config.PathList{Paths: o.paths},
		config.PathList{Paths: o.pathsTOML, Format: config.FormatTOML},
		config.PathList{Paths: o.pathsJSON, Format: config.FormatJSON},
		config.PathList{Paths: o.pathsYAML, Format: config.FormatYAML},
	)
	return append(files, config.Dirs(o.dirs)...)
}

// graphCommand creates the graph command that prints the pipeline topology.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the pipeline topology as DOT or Mermaid",
		Long: `Print the topology of a pipeline configuration to stdout.

Sources, transforms, and sinks become nodes; every declared input becomes an
edge. Inputs of the form "component.port" label their edge with the port.

The DOT output can be laid out with Graphviz:

  pipegraph graph -c pipeline.toml | dot -Tsvg > pipeline.svg

The Mermaid output can be pasted into any Mermaid renderer:

  pipegraph graph -c pipeline.yaml -f mermaid

When no configuration is given, ` + config.DefaultConfigPath + ` is read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.paths = stringList(v, "config")
			opts.dirs = stringList(v, "config-dir")
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.paths, "config", "c", nil,
		"read configuration from one or more files; wildcards are supported, format is detected from the extension [$"+envConfig+"]")
	flags.StringSliceVar(&opts.pathsTOML, "config-toml", nil, "configuration files in TOML format")
	flags.StringSliceVar(&opts.pathsJSON, "config-json", nil, "configuration files in JSON format")
	flags.StringSliceVar(&opts.pathsYAML, "config-yaml", nil, "configuration files in YAML format")
	flags.StringSliceVarP(&opts.dirs, "config-dir", "C", nil,
		"read configuration from files in one or more directories; files not ending in .toml, .json, .yaml or .yml are ignored [$"+envConfigDir+"]")
	flags.StringVarP(&opts.outputFormat, "output-format", "f", render.FormatDOT.String(),
		"output format: "+strings.Join(render.Formats(), ", "))

	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("config-dir", flags.Lookup("config-dir"))
	_ = v.BindEnv("config", envConfig)
	_ = v.BindEnv("config-dir", envConfigDir)

	_ = cmd.RegisterFlagCompletionFunc("output-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runGraph resolves the output format, runs the pipeline, and writes the
// document to w in a single write. The format is checked first so a bad
// --output-format fails without reading any configuration.
func (c *CLI) runGraph(ctx context.Context, w io.Writer, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	format, err := render.ParseFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Paths:  opts.configPaths(),
		Format: format,
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, result.Document); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write output")
	}
	prog.done(fmt.Sprintf("Rendered %d nodes, %d edges as %s", result.Stats.NodeCount, result.Stats.EdgeCount, format))
	return nil
}

// stringList reads a list option bound to both a slice flag and an
// environment variable. Flags yield []string; the environment yields a
// comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case []string:
		raw = val
	case string:
		raw = strings.Split(val, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
