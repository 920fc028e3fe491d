package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKind tells set how to parse a key's value.
type configKind int

const (
	configString configKind = iota
	configCount             // positive integer
)

// configSchema lists the keys gto understands; set rejects anything else.
var configSchema = map[string]struct {
	kind configKind
	help string
}{
	"scan.store": {configString, "Default DuckDB file for gto scan"},
	"scan.type":  {configString, "Default feature type filter for gto scan"},
	"frames.k":   {configCount, "Default kmer length for gto frames"},
}

func configKeys() []string {
	keys := make([]string, 0, len(configSchema))
	for key := range configSchema {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// normalizeConfigValue validates a key against the schema and converts the
// value to its configured type.
func normalizeConfigValue(key, value string) (any, error) {
	schema, ok := configSchema[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (known keys: %s)",
			key, strings.Join(configKeys(), ", "))
	}
	switch schema.kind {
	case configCount:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config key %s takes an integer, got %q", key, value)
		}
		if n < 1 {
			return nil, fmt.Errorf("config key %s takes a positive integer, got %d", key, n)
		}
		return n, nil
	default:
		return value, nil
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gto configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.gto.yaml.",
		Example: `  gto config                               # show all config
  gto config set scan.store features.duckdb  # default store for scan
  gto config set frames.k 9                  # default kmer length
  gto config get scan.store                  # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.gto.yaml")
		fmt.Println("# Known keys:")
		for _, key := range configKeys() {
			fmt.Printf("#   %-12s %s\n", key, configSchema[key].help)
		}
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	parsed, err := normalizeConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, parsed)

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".gto.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	if _, ok := configSchema[key]; !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)",
			key, strings.Join(configKeys(), ", "))
	}
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
