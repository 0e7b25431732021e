package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verilens/verilens/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "verilens",
	Short: "VeriLens - AI-generated image detection via inference providers",
	Long: `VeriLens classifies an image as AI-generated or natural by consulting
external machine-learning inference providers and normalizing their answers
into one canonical verdict with a confidence score, risk tier, and a
human-readable rationale.

VeriLens performs no inference itself: it orchestrates an ordered cascade of
classifier providers, folds in best-effort object detection, and explains
the outcome.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("verilens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.verilens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and VERILENS_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".verilens"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERILENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults, then config
// file and environment, including the provider credential. The credential
// is read exactly once here and handed to constructors.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if key := viper.GetString("providers.api_key"); key != "" {
		cfg.Providers.APIKey = key
	}
	if cfg.Providers.APIKey == "" {
		cfg.Providers.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
	}

	if base := viper.GetString("providers.base_url"); base != "" {
		cfg.Providers.BaseURL = base
	}
	if classifiers := viper.GetStringSlice("providers.classifiers"); len(classifiers) > 0 {
		cfg.Providers.Classifiers = classifiers
	}
	if detector := viper.GetString("providers.detector"); detector != "" {
		cfg.Providers.Detector = detector
	}

	cfg.Output.Verbose = viper.GetBool("output.verbose") || verbose

	if cfg.History.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.History.Dir = filepath.Join(home, ".verilens", "history")
		} else {
			cfg.History.Enabled = false
		}
	}

	return cfg
}

// requireAPIKey fails early when no credential is configured
func requireAPIKey(cfg *model.Config) error {
	if cfg.Providers.APIKey == "" {
		return fmt.Errorf("HUGGINGFACE_API_KEY is not set; create a token that can call inference providers at https://huggingface.co/settings/tokens")
	}
	return nil
}
