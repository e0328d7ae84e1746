package config

import (
	"context"
	"fmt"
	"os"

	"github.com/duyet/sqlite-to-clickhouse/internal/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "sqlite-to-clickhouse",
		Short: "SQLite to ClickHouse migration tool",
		Long: `A database migration tool that copies every table and every row
from a SQLite database into a ClickHouse database, inferring the
ClickHouse schema from the SQLite column declarations.`,
	}

	copyCmd = &cobra.Command{
		Use:   "copy",
		Short: "Copy all SQLite tables into ClickHouse",
		Long: `Copy every table from the SQLite database into ClickHouse. Tables
are created in ClickHouse if they are missing, and rows are streamed
in fixed-size batches.`,
		RunE: runCopy,
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate database connections and configuration",
		Long: `Open both the SQLite source and the ClickHouse target using the
current configuration, without copying any data.`,
		RunE: runValidate,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("SQLite to ClickHouse migrator v1.0")
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sqlite-to-clickhouse.yaml)")

	// Source flags
	rootCmd.PersistentFlags().String("sqlite", "", "Path to the SQLite database")

	// ClickHouse connection flags
	rootCmd.PersistentFlags().String("host", "localhost", "ClickHouse host")
	rootCmd.PersistentFlags().Int("port", 9000, "ClickHouse native port")
	rootCmd.PersistentFlags().String("db", "", "ClickHouse database name")
	rootCmd.PersistentFlags().String("user", "", "ClickHouse user")
	rootCmd.PersistentFlags().String("password", "", "ClickHouse password")

	// SSH tunnel flags
	rootCmd.PersistentFlags().String("sshkey", "", "Path to SSH private key file")
	rootCmd.PersistentFlags().String("sshuser", "", "SSH user")
	rootCmd.PersistentFlags().String("sshhost", "", "SSH host")
	rootCmd.PersistentFlags().Int("sshport", 22, "SSH port")

	// Copy command specific flags
	copyCmd.Flags().Int("chunk-size", 10000, "Rows per insert batch")

	// Add commands
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all flags to viper
	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.BindPFlags(copyCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".sqlite-to-clickhouse")
	}

	viper.SetEnvPrefix("S2CH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func getConfig() database.Config {
	return database.Config{
		SQLitePath: viper.GetString("sqlite"),
		Host:       viper.GetString("host"),
		Port:       viper.GetInt("port"),
		Database:   viper.GetString("db"),
		User:       viper.GetString("user"),
		Password:   viper.GetString("password"),
		ChunkSize:  viper.GetInt("chunk-size"),
		SSHKey:     viper.GetString("sshkey"),
		SSHUser:    viper.GetString("sshuser"),
		SSHHost:    viper.GetString("sshhost"),
		SSHPort:    viper.GetInt("sshport"),
	}
}

func checkRequired(config database.Config) error {
	if config.SQLitePath == "" {
		return fmt.Errorf("SQLite path is required (--sqlite)")
	}
	if config.Database == "" {
		return fmt.Errorf("ClickHouse database name is required (--db)")
	}
	if config.User == "" {
		return fmt.Errorf("ClickHouse user is required (--user)")
	}
	if config.Password == "" {
		return fmt.Errorf("ClickHouse password is required (--password)")
	}
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	config := getConfig()
	if err := checkRequired(config); err != nil {
		return err
	}

	migrator, err := database.NewMigrator(config)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	return migrator.Run(context.Background())
}

func runValidate(cmd *cobra.Command, args []string) error {
	config := getConfig()
	if err := checkRequired(config); err != nil {
		return err
	}

	migrator, err := database.NewMigrator(config)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	fmt.Println("Configuration is valid and both databases are accessible")
	return nil
}
