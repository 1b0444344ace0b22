package config

import (
	"time"
)

var (
	ConfigPath   = "./config/"
	ConfigFile   = ConfigPath + "config.json"
	LogPath      = "./logs/"
	BackendLog   = "backend"
	SwapLog      = "swap"
	TraderLog    = "trader"
	StoreLog     = "store"
	ServerLog    = "server"
	MetadataLog  = "metadata"
	NotifyLog    = "notify"
	WatchLog     = "watch"
	EnvPrefix    = "SWAPOFFER"
	ExplorerBase = "https://explorer.solana.com/tx/"
)

type Node struct {
	Rpc    string `json:"rpc" mapstructure:"rpc"`
	Ws     string `json:"ws" mapstructure:"ws"`
	Usable bool   `json:"usable" mapstructure:"usable"`
}

type Config struct {
	Nodes                   []*Node       `json:"nodes" mapstructure:"nodes"`
	Program                 string        `json:"program" mapstructure:"program"`
	Commitment              string        `json:"commitment" mapstructure:"commitment"`
	PollInterval            time.Duration `json:"poll_interval" mapstructure:"poll_interval"`
	ConfirmTimeout          time.Duration `json:"confirm_timeout" mapstructure:"confirm_timeout"`
	SeparateAccountCreation bool          `json:"separate_account_creation" mapstructure:"separate_account_creation"`
	Key                     string        `json:"key" mapstructure:"key"`
	Cluster                 string        `json:"cluster" mapstructure:"cluster"`
	TokenListUrl            string        `json:"token_list_url" mapstructure:"token_list_url"`
	MetadataCacheSize       int           `json:"metadata_cache_size" mapstructure:"metadata_cache_size"`
	MetadataCacheTTL        time.Duration `json:"metadata_cache_ttl" mapstructure:"metadata_cache_ttl"`
	DBUrl                   string        `json:"db_url" mapstructure:"db_url"`
	DBScheme                string        `json:"db_scheme" mapstructure:"db_scheme"`
	DBUser                  string        `json:"db_user" mapstructure:"db_user"`
	DBPasswd                string        `json:"db_passwd" mapstructure:"db_passwd"`
	DingUrl                 string        `json:"ding_url" mapstructure:"ding_url"`
	Listen                  string        `json:"listen" mapstructure:"listen"`
	LogPath                 string        `json:"log_path" mapstructure:"log_path"`
}

// ExplorerUrl links a transaction signature on the configured cluster.
func (cfg *Config) ExplorerUrl(signature string) string {
	if cfg.Cluster == "" || cfg.Cluster == "mainnet-beta" {
		return ExplorerBase + signature
	}
	return ExplorerBase + signature + "?cluster=" + cfg.Cluster
}

// UsableNodes drops the nodes marked unusable.
func (cfg *Config) UsableNodes() []*Node {
	nodes := make([]*Node, 0, len(cfg.Nodes))
	for _, node := range cfg.Nodes {
		if node.Usable {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (cfg *Config) HasJournal() bool {
	return cfg.DBUrl != ""
}

func (cfg *Config) HasNotify() bool {
	return cfg.DingUrl != ""
}
