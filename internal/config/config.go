// Package config resolves the settings shared by the CLI and TUI from flags,
// ISSUECFG_* environment variables and an optional .issuecfg.yaml file.
package config

import (
        "errors"
        "os"
        "strings"

        "github.com/golang/glog"
        "github.com/mitchellh/go-homedir"
        "github.com/spf13/pflag"
        "github.com/spf13/viper"
)

const (
        EnvPrefix  = "ISSUECFG"
        configName = ".issuecfg" // .yaml is implicit
)

type Config struct {
        Dir       string
        Workspace string
        Org       string
        Format    string
        Pretty    bool
}

// Keys are both config file keys and flag names.
var keys = []string{"dir", "workspace", "org", "format", "pretty"}

// Load reads the config file (ISSUECFG_CONFIG_PATH, then the current directory, then home),
// environment variables and, when given, the flags bound to the same keys.
// A flag wins only when it was set explicitly.
func Load(flags *pflag.FlagSet) (Config, error) {
        v := viper.New()
        v.SetDefault("format", "json")
        v.SetDefault("org", "org-local")
        v.SetConfigName(configName)
        v.SetEnvPrefix(EnvPrefix)
        v.AutomaticEnv()

        if override := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_PATH")); override != "" {
                v.AddConfigPath(override)
        }
        v.AddConfigPath("./")
        if home, err := homedir.Dir(); err == nil {
                v.AddConfigPath(home)
        }

        if err := v.ReadInConfig(); err != nil {
                var notFound viper.ConfigFileNotFoundError
                if !errors.As(err, &notFound) {
                        return Config{}, err
                }
        } else {
                glog.V(1).Infof("config: using %s", v.ConfigFileUsed())
        }

        if flags != nil {
                for _, k := range keys {
                        if f := flags.Lookup(k); f != nil {
                                if err := v.BindPFlag(k, f); err != nil {
                                        return Config{}, err
                                }
                        }
                }
        }

        return Config{
                Dir:       strings.TrimSpace(v.GetString("dir")),
                Workspace: strings.TrimSpace(v.GetString("workspace")),
                Org:       strings.TrimSpace(v.GetString("org")),
                Format:    strings.ToLower(strings.TrimSpace(v.GetString("format"))),
                Pretty:    v.GetBool("pretty"),
        }, nil
}
