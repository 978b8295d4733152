// Package config assembles the CLI configuration from defaults, an optional
// config file, environment variables, and runtime overrides, in rising
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stratushq/stratuswire/pkg/logstore"
)

// Config is the resolved CLI configuration.
type Config struct {
	Logging  Logging  `mapstructure:"logging"`
	LogStore LogStore `mapstructure:"logstore"`
}

// Logging selects the CLI logger's level and output profile.
type Logging struct {
	Level   zapcore.Level `mapstructure:"level"`
	Profile string        `mapstructure:"profile"`
}

// LogStore configures where rendered tasks point their log locations. Empty
// templates leave the corresponding access point absent.
type LogStore struct {
	UITemplate       string `mapstructure:"ui_template"`
	LiveTemplate     string `mapstructure:"live_template"`
	SnapshotTemplate string `mapstructure:"snapshot_template"`
	S3               S3     `mapstructure:"s3"`
}

// S3 describes the object-storage layout for archived task logs.
type S3 struct {
	AccountID   string `mapstructure:"account_id"`
	AccountName string `mapstructure:"account_name"`
	Region      string `mapstructure:"region"`
	Bucket      string `mapstructure:"bucket"`
	KeyTemplate string `mapstructure:"key_template"`
}

// Configured reports whether any log location source is set.
func (l LogStore) Configured() bool {
	return l.UITemplate != "" || l.LiveTemplate != "" || l.SnapshotTemplate != "" || l.S3.Bucket != ""
}

// Provider builds the log-storage lookup described by this section. An
// unconfigured section yields the empty provider.
func (l LogStore) Provider() (logstore.Provider, error) {
	if !l.Configured() {
		return logstore.Empty{}, nil
	}
	return logstore.NewStatic(logstore.Config{
		UITemplate:       l.UITemplate,
		LiveTemplate:     l.LiveTemplate,
		SnapshotTemplate: l.SnapshotTemplate,
		S3: logstore.S3Config{
			AccountID:   l.S3.AccountID,
			AccountName: l.S3.AccountName,
			Region:      l.S3.Region,
			Bucket:      l.S3.Bucket,
			KeyTemplate: l.S3.KeyTemplate,
		},
	})
}

// Load resolves the configuration. Overrides are nested maps mirroring the
// config layout; they take precedence over environment variables, which take
// precedence over the config file and defaults.
func Load(overrides ...map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STRATUSWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("logging.level", "STRATUSWIRE_LOGGING_LEVEL", "STRATUSWIRE_LOG_LEVEL")
	_ = v.BindEnv("logging.profile", "STRATUSWIRE_LOGGING_PROFILE", "STRATUSWIRE_LOG_PROFILE")

	v.SetConfigName("stratuswire")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, override := range overrides {
		applyOverrides(v, "", override)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("logstore.ui_template", "")
	v.SetDefault("logstore.live_template", "")
	v.SetDefault("logstore.snapshot_template", "")
	v.SetDefault("logstore.s3.account_id", "")
	v.SetDefault("logstore.s3.account_name", "")
	v.SetDefault("logstore.s3.region", "")
	v.SetDefault("logstore.s3.bucket", "")
	v.SetDefault("logstore.s3.key_template", "")
}

// applyOverrides flattens nested override maps into dotted keys. Set values
// outrank every other source in viper.
func applyOverrides(v *viper.Viper, prefix string, values map[string]any) {
	for key, value := range values {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			applyOverrides(v, path, nested)
			continue
		}
		v.Set(path, value)
	}
}
