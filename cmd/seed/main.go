package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grammarguide/internal/config"
	"grammarguide/internal/db"
	"grammarguide/internal/logger"
	"grammarguide/internal/repository"
	"grammarguide/internal/seed"
	"grammarguide/internal/service"
	"grammarguide/internal/snowflake"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace every grammar entry with the bundled set",
		Long: `Clears the grammar store and inserts the bundled entries, or the
entries of --file. Connection settings come from the same GRAMMAR_*
environment variables as the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
			return run(cmd.Context(), cfg, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file to seed from instead of the bundled entries")
	return cmd
}

func run(ctx context.Context, cfg config.Config, file string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := seed.Bundled()
	if file != "" {
		entries, err = seed.LoadFile(file)
	}
	if err != nil {
		return err
	}

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return err
	}
	conn, err := db.Open(ctx, db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return err
	}
	defer conn.Close()

	svc, err := service.NewSeedService(repository.NewEntryRepository(conn))
	if err != nil {
		return err
	}
	stored, err := svc.Seed(ctx, entries)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d entries.\n", stored)
	return nil
}
