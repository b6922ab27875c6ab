package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobradar"
)

type Config struct {
	Search    *SearchConfig    `mapstructure:"search"`
	Providers *ProvidersConfig `mapstructure:"providers"`
	Profile   *ProfileConfig   `mapstructure:"profile"`

	OutputDir         string `mapstructure:"output-dir"`
	CoverTemplateFile string `mapstructure:"cover-template-file"`

	DatabaseURL     string `mapstructure:"database-url"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
	RedisURL        string `mapstructure:"redis-url"`
	RedisURLFile    string `mapstructure:"redis-url-file"`

	Schedule string `mapstructure:"schedule"`
}

// SearchConfig is the policy configuration consumed by the gates and
// the scorer.
type SearchConfig struct {
	Keywords             []string `mapstructure:"keywords"`
	MinSalaryEUR         int      `mapstructure:"min-salary-eur"`
	AllowUSRemote        bool     `mapstructure:"allow-us-remote"`
	AllowedLocationHints []string `mapstructure:"allowed-location-hints"`
	BlockedLocationHints []string `mapstructure:"blocked-location-hints"`
	PreferredCountry     string   `mapstructure:"preferred-country"`
}

// ProvidersConfig selects which sources are fetched and with which
// board/company fan-out.
type ProvidersConfig struct {
	Greenhouse     []string `mapstructure:"greenhouse"`
	Lever          []string `mapstructure:"lever"`
	Ashby          []string `mapstructure:"ashby"`
	Remotive       bool     `mapstructure:"remotive"`
	RemoteOK       bool     `mapstructure:"remoteok"`
	WeWorkRemotely bool     `mapstructure:"weworkremotely"`
}

// ProfileConfig fills cover-note placeholders.
type ProfileConfig struct {
	Name          string `mapstructure:"name"`
	Years         int    `mapstructure:"years"`
	BackendImpact string `mapstructure:"backend-impact"`
	MobileImpact  string `mapstructure:"mobile-impact"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobradar aggregates remote job postings, scores them against a preference model, and renders a daily shortlist",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env can supply DATABASE_URL and friends during development.
	_ = godotenv.Load()

	if err := viper.BindEnv("database-url", "DATABASE_URL"); err != nil {
		log.Fatalf("binding DATABASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("redis-url", "REDIS_URL"); err != nil {
		log.Fatalf("binding REDIS_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobradar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run command.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
