package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mazad/goapi/base/log"
)

const DefaultPath = "infra/configs/config.yaml"

// Load reads the yaml config into the global viper. The path comes from --config.
// A .env file in the working directory, when present, is exported before env overrides
// are applied, so MONGO_URI overrides mongo.uri.
func Load(args []string) error {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	path := fs.StringP("config", "c", DefaultPath, "path of the yaml config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// MustLoad panics when the config cannot be read
func MustLoad(args []string) {
	if err := Load(args); err != nil {
		panic(err)
	}
	if viper.GetBool("debug") {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// Log is the logger section of the loaded config
func Log() log.Config {
	return log.Config{
		Level:       viper.GetString("log.level"),
		Development: viper.GetBool("debug"),
		File: log.FileConfig{
			Path:       viper.GetString("log.file.path"),
			MaxSizeMb:  viper.GetInt("log.file.maxSizeMb"),
			MaxBackups: viper.GetInt("log.file.maxBackups"),
			MaxAgeDays: viper.GetInt("log.file.maxAgeDays"),
		},
	}
}
