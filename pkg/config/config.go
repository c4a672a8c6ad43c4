// pkg/config/config.go

package config

import (
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options is the explicit configuration passed to every component.
// Populated once at startup from flags and ARGUS_* environment variables
// with fixed fallback defaults; nothing reads ambient globals afterwards.
type Options struct {
	// Server is the monitoring server the agent reports to, host or IP.
	Server string `mapstructure:"server" validate:"required,hostname|ip"`

	// AgentVersion selects the vendor repository release line.
	AgentVersion string `mapstructure:"agent_version" validate:"required"`

	// ConfPath is the agent configuration file to upsert.
	ConfPath string `mapstructure:"conf_path" validate:"required,filepath"`

	// ProbeTimeout bounds each reachability attempt.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"required"`

	// DryRun logs external commands without running them.
	DryRun bool `mapstructure:"dry_run"`
}

const envPrefix = "ARGUS"

// Defaults mirrors the fallback values the source environment provided.
func Defaults() *Options {
	return &Options{
		Server:       "127.0.0.1",
		AgentVersion: "6.0",
		ConfPath:     shared.AgentConfPath,
		ProbeTimeout: shared.DefaultProbeTimeout,
	}
}

// Load builds Options from defaults, environment, and the given flag set,
// in increasing precedence, then validates the result.
func Load(flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("server", defaults.Server)
	v.SetDefault("agent_version", defaults.AgentVersion)
	v.SetDefault("conf_path", defaults.ConfPath)
	v.SetDefault("probe_timeout", defaults.ProbeTimeout)
	v.SetDefault("dry_run", false)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, cerr.Wrap(err, "unmarshal configuration")
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate runs struct validation over the assembled options.
func Validate(opts *Options) error {
	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return cerr.WithHint(err, "configuration validation failed")
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"server":        "server",
		"agent_version": "agent-version",
		"conf_path":     "conf",
		"probe_timeout": "probe-timeout",
		"dry_run":       "dry-run",
	}
	for key, flag := range bindings {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cerr.Wrapf(err, "bind flag %s", flag)
			}
		}
	}
	return nil
}

// RegisterFlags declares the shared configuration flags on a command's
// flag set. Commands that take a subset simply skip this.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Defaults()
	flags.String("server", defaults.Server, "Monitoring server the agent reports to (env ARGUS_SERVER)")
	flags.String("agent-version", defaults.AgentVersion, "Agent release line to install (env ARGUS_AGENT_VERSION)")
	flags.String("conf", defaults.ConfPath, "Agent configuration file path (env ARGUS_CONF_PATH)")
	flags.Duration("probe-timeout", defaults.ProbeTimeout, "Reachability probe timeout (env ARGUS_PROBE_TIMEOUT)")
	flags.Bool("dry-run", false, "Log external commands without executing them")
}
