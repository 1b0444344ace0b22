package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("nodes", []map[string]interface{}{
		{"rpc": "https://api.devnet.solana.com", "ws": "wss://api.devnet.solana.com", "usable": true},
	})
	v.SetDefault("program", "GSYCrqvf4xw2mP4DdYbPwKsNiKfnhhTSyv8p7h1SX28R")
	v.SetDefault("commitment", "confirmed")
	v.SetDefault("poll_interval", 500*time.Millisecond)
	v.SetDefault("confirm_timeout", 90*time.Second)
	v.SetDefault("separate_account_creation", false)
	v.SetDefault("cluster", "devnet")
	v.SetDefault("token_list_url", "https://token.jup.ag/all")
	v.SetDefault("metadata_cache_size", 1024)
	v.SetDefault("metadata_cache_ttl", 10*time.Minute)
	v.SetDefault("listen", "0.0.0.0:8089")
	v.SetDefault("log_path", LogPath)
	for _, key := range []string{"key", "db_url", "db_scheme", "db_user", "db_passwd", "ding_url"} {
		v.SetDefault(key, "")
	}
}

// LoadConfig reads defaults, then the json file (if file is not empty), then
// SWAPOFFER_* environment variables.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "config file %s", file)
		}
		v.SetConfigFile(file)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if len(cfg.UsableNodes()) == 0 {
		return errors.New("config: no usable node")
	}
	if cfg.Program == "" {
		return errors.New("config: program is empty")
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return errors.Errorf("config: unknown commitment %q", cfg.Commitment)
	}
	if cfg.PollInterval <= 0 {
		return errors.New("config: poll_interval must be positive")
	}
	if cfg.ConfirmTimeout <= 0 {
		return errors.New("config: confirm_timeout must be positive")
	}
	return nil
}
