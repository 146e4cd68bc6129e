package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/home-lang/den/concurrency"
	"github.com/home-lang/den/config"
	"github.com/home-lang/den/discovery"
	"github.com/home-lang/den/log"
	"github.com/home-lang/den/shell"
)

var (
	version     = "1.0.0"
	commandFlag string
	workersFlag int

	rootCmd = &cobra.Command{
		Use:   "den",
		Short: "den - an interactive command shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()

			cfg := config.LoadConfig()
			if workersFlag > 0 {
				cfg.Workers = workersFlag
			}

			sh := shell.New(cfg)

			var status int
			if commandFlag != "" {
				status = sh.EvalString(commandFlag)
			} else {
				status = sh.Run()
			}
			sh.Close()
			log.Close()
			os.Exit(status)
			return nil
		},
	}

	pathsCmd = &cobra.Command{
		Use:   "paths",
		Short: "Scan PATH in parallel and print every discovered command",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			pool := concurrency.NewPool(cfg.Workers)
			defer pool.Shutdown()

			dirs := discovery.SplitPathList(os.Getenv("PATH"))
			idx := discovery.BuildIndex(pool, cfg.ShardCount, dirs)
			for _, name := range idx.Names() {
				path, _ := idx.Lookup(name)
				fmt.Printf("%s\t%s\n", name, path)
			}
			fmt.Fprintf(os.Stderr, "%d commands in %d PATH entries\n", idx.Len(), len(dirs))
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset stored shell state (history)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			if err := config.ResetState(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("Shell state has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of den",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("den version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&commandFlag, "command", "c", "",
		"Run a single command line and exit instead of starting the interactive shell")
	rootCmd.Flags().IntVarP(&workersFlag, "workers", "w", 0,
		"Worker goroutines for parallel PATH scanning (0 = autodetect)")

	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
