package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigKey is returned for a config file key that names no option.
var ErrUnknownConfigKey = errors.New("unknown config key")

// Options are the command line flags. Every option can also come from the
// environment or from the YAML file named by --config, whose keys are the
// long flag names. A flag given on the command line beats the environment,
// which beats the config file, which beats the built-in default.
type Options struct {
	Order        string   `long:"order" env:"FLATSET_ORDER" default:"lexical" choice:"lexical" choice:"natural" choice:"collate" choice:"semver" description:"element ordering"`                                                    //nolint:lll
	Locale       string   `long:"locale" env:"FLATSET_LOCALE" default:"en" description:"language whose collation rules --order=collate applies"`                                                                                    //nolint:lll
	Reverse      bool     `long:"reverse" env:"FLATSET_REVERSE" description:"invert the ordering"`                                                                                                                                  //nolint:lll
	Budget       int64    `long:"budget" env:"FLATSET_BUDGET" default:"0" description:"maximum element capacity the set may hold allocated, 0 for no limit"`                                                                        //nolint:lll
	Load         []string `long:"load" env:"FLATSET_LOAD" env-delim:"," description:"snapshot to load at start, may be repeated"`                                                                                                   //nolint:lll
	Save         string   `long:"save" env:"FLATSET_SAVE" description:"snapshot to write on exit, also the default for the save command"`                                                                                           //nolint:lll
	Format       string   `long:"format" env:"FLATSET_FORMAT" default:"json" choice:"json" choice:"yaml" description:"payload format of saved snapshots"`                                                                           //nolint:lll
	Compression  string   `long:"compression" env:"FLATSET_COMPRESSION" default:"none" choice:"none" choice:"gzip" choice:"zstd" choice:"brotli" choice:"lz4" choice:"snappy" description:"payload compression of saved snapshots"` //nolint:lll
	Workers      int      `long:"workers" env:"FLATSET_WORKERS" default:"0" description:"snapshots decoded in parallel, 0 for one per file"`                                                                                        //nolint:lll
	MetricsAddr  string   `long:"metrics-addr" env:"FLATSET_METRICS_ADDR" description:"serve Prometheus metrics on this address"`                                                                                                   //nolint:lll
	OTLPEndpoint string   `long:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT" description:"export traces over OTLP/HTTP to this URL, empty for none"`                                                                    //nolint:lll
	LogLevel     string   `long:"log-level" env:"LOG_LEVEL" default:"info" description:"debug, info, warn or error"`                                                                                                                //nolint:lll
	LogJSON      bool     `long:"log-json" env:"LOG_JSON" description:"log as JSON"`                                                                                                                                                //nolint:lll
	Batch        bool     `long:"batch" env:"FLATSET_BATCH" description:"read commands from stdin without prompting, even on a terminal"`                                                                                           //nolint:lll
	NoBanner     bool     `long:"no-banner" env:"FLATSET_NO_BANNER" description:"do not draw the welcome banner"`                                                                                                                   //nolint:lll
	Config       string   `long:"config" env:"FLATSET_CONFIG" description:"YAML file with values for any of these options"`                                                                                                         //nolint:lll
}

// parseOptions parses args (without the program name). When a config file is
// named, its values are turned into flags placed before args and everything
// is parsed again, so go-flags validates them the same way.
func parseOptions(args []string) (*Options, error) {
	opts, parser, err := parse(args)
	if err != nil {
		return nil, err
	}

	if opts.Config == "" {
		return opts, nil
	}

	path := opts.Config

	extra, err := configArgs(parser, path)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return opts, nil
	}

	opts, _, err = parse(append(extra, args...))
	if err != nil {
		return nil, fmt.Errorf("applying config %s: %w", path, err)
	}

	return opts, nil
}

func parse(args []string) (*Options, *flags.Parser, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag)
	parser.Name = "flatsetctl"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	if len(rest) > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " ")) //nolint:err113
	}

	return opts, parser, nil
}

// configArgs reads the YAML config at path and returns flags for every key
// that the command line and the environment left alone.
func configArgs(parser *flags.Parser, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	var args []string

	for _, key := range keys {
		opt := parser.FindOptionByLongName(key)
		if opt == nil || key == "config" {
			return nil, fmt.Errorf("%w %q in %s", ErrUnknownConfigKey, key, path)
		}

		if explicitlySet(opt) {
			continue
		}

		args = append(args, flagArgs(key, values[key])...)
	}

	return args, nil
}

// explicitlySet reports whether opt got its value from the command line or
// the environment. go-flags applies environment values as defaults, so the
// environment is checked directly.
func explicitlySet(opt *flags.Option) bool {
	if key := opt.EnvKeyWithNamespace(); key != "" {
		if _, ok := os.LookupEnv(key); ok {
			return true
		}
	}

	return opt.IsSet() && !opt.IsSetDefault()
}

func flagArgs(name string, value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return []string{"--" + name}
		}

		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("--%s=%v", name, item))
		}

		return out
	default:
		return []string{fmt.Sprintf("--%s=%v", name, v)}
	}
}
