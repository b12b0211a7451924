package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/histoprint/pkg/errors"
	"github.com/matzehuels/histoprint/pkg/io"
	"github.com/matzehuels/histoprint/pkg/pipeline"
)

// Config is the on-disk configuration. Command-line flags override it.
//
//	[render]
//	mode = "stack"
//	summary = true
//	fg_colors = "rgb"
//
//	[input]
//	bins = "20"
type Config struct {
	Render pipeline.Options `toml:"render"`
	Input  InputConfig      `toml:"input"`
	Output OutputConfig     `toml:"output"`
}

// InputConfig controls how input files are read and binned.
type InputConfig struct {
	Bins   string   `toml:"bins,omitempty"`
	Fields []string `toml:"fields,omitempty"`
	Format string   `toml:"format,omitempty"`
	Cache  bool     `toml:"cache,omitempty"`
}

// OutputConfig controls how rendered lines are written.
type OutputConfig struct {
	Format  string `toml:"format,omitempty"`
	NoColor bool   `toml:"no_color,omitempty"`
}

// loadConfig reads the config at path. An empty path means the default
// location, which may be missing; an explicit path must exist.
func loadConfig(path string) (Config, string, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, "", nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, "", nil
		}
		if os.IsNotExist(err) {
			return Config{}, path, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Config{}, path, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, path, errors.Configuration("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, path, nil
}

// importOptions converts the input section for io.Import.
func (c Config) importOptions() (io.Options, error) {
	bins, err := io.ParseBinSpec(c.Input.Bins)
	if err != nil {
		return io.Options{}, err
	}
	format, err := io.ParseFormat(c.Input.Format)
	if err != nil {
		return io.Options{}, err
	}
	return io.Options{Format: format, Fields: c.Input.Fields, Bins: bins}, nil
}

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool
	flags := &printFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration that a histoprint invocation with the same flags
would use: built-in defaults, then the config file, then flags.

The config file is read from --config or ` + "`$XDG_CONFIG_HOME/histoprint/config.toml`" + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if showPath {
				if path == "" {
					path, _ = defaultConfigPath()
				}
				_, err := fmt.Fprintln(c.Stdout, path)
				return err
			}
			cfg.Render.SetDefaults()
			if cfg.Input.Bins == "" {
				cfg.Input.Bins = io.BinSpec{}.String()
			}
			return toml.NewEncoder(c.Stdout).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path instead")
	flags.register(cmd)
	return cmd
}
