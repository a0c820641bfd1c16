package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tilebill",
	Short: "Tile coverage calculator and bill service",
	Long: "tilebill converts room and tile measurements into required box counts,\n" +
		"accumulates calculations into bills, and persists them with a bounded\n" +
		"retention policy.",
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .tilebill.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".tilebill")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TILEBILL")
	viper.AutomaticEnv()

	if db, _ := rootCmd.Flags().GetString("db"); db != "" {
		viper.Set("db_path", db)
	}

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
