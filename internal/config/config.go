package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Session  SessionConfig
	Database DatabaseConfig
	Log      LogConfig
	Labels   []LabelGroup
	// Keys maps operator names to key sequences. Filled from the [keys]
	// table after unmarshal, since values may be a string or a list.
	Keys map[string]KeySeq `mapstructure:"-"`
}

// SessionConfig names the run and where its corpus and outputs live.
type SessionConfig struct {
	Name      string
	Sentences string
	OutputDir string `mapstructure:"output_dir"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds log file settings. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// LabelGroup is one configured group of mutually exclusive labels.
type LabelGroup struct {
	Group   string
	Entries []LabelEntry
}

// LabelEntry binds a label name to its shortcut key.
type LabelEntry struct {
	Name string
	Key  string
}

// KeySeq is an ordered key sequence.
type KeySeq []string

// GroupNames returns the label group names in configured order.
func (c Config) GroupNames() []string {
	out := make([]string, 0, len(c.Labels))
	for _, g := range c.Labels {
		out = append(out, g.Group)
	}
	return out
}

var defaultKeys = map[string]any{
	"cancellabel":     "backspace",
	"cursorup":        "i",
	"cursordown":      "k",
	"cursorleft":      "j",
	"cursorright":     "l",
	"setmark":         " ",
	"confirmsentence": "enter",
}

func defaultLabels() []map[string]any {
	return []map[string]any{
		{
			"group": "role",
			"entries": []map[string]any{
				{"name": "subject", "key": "s"},
				{"name": "predicate", "key": "p"},
				{"name": "object", "key": "o"},
			},
		},
		{
			"group": "is_product",
			"entries": []map[string]any{
				{"name": "product", "key": "f"},
			},
		},
	}
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "spantag")
}

// Load reads configuration from file and env. Env var overrides use prefix SPANTAG_.
// path, when non-empty, takes precedence over SPANTAG_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("session.name", "default")
	v.SetDefault("session.sentences", "sents.txt")
	v.SetDefault("session.output_dir", "output")
	v.SetDefault("database.path", filepath.Join(dataDir(), "spantag.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "spantag.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("labels", defaultLabels())
	for name, k := range defaultKeys {
		v.SetDefault("keys."+name, k)
	}

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SPANTAG_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "spantag"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPANTAG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	keys, err := keySeqs(v.AllSettings()["keys"])
	if err != nil {
		return Config{}, err
	}
	c.Keys = keys

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func keySeqs(raw any) (map[string]KeySeq, error) {
	out := make(map[string]KeySeq)
	table, ok := raw.(map[string]any)
	if !ok {
		if raw == nil {
			return out, nil
		}
		return nil, fmt.Errorf("keys: expected a table, got %T", raw)
	}
	for name, val := range table {
		seq, err := toKeySeq(val)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", name, err)
		}
		out[name] = seq
	}
	return out, nil
}

func toKeySeq(val any) (KeySeq, error) {
	switch v := val.(type) {
	case string:
		return KeySeq{v}, nil
	case []string:
		return KeySeq(v), nil
	case []any:
		seq := make(KeySeq, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected key name, got %T", item)
			}
			seq = append(seq, s)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("expected a key or a list of keys, got %T", val)
	}
}
