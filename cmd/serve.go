package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paixi-lab/paixi/internal/config"
	"github.com/paixi-lab/paixi/internal/emotion"
	"github.com/paixi-lab/paixi/internal/llm"
	"github.com/paixi-lab/paixi/internal/logging"
	"github.com/paixi-lab/paixi/internal/persona"
	"github.com/paixi-lab/paixi/internal/server"
	"github.com/paixi-lab/paixi/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe opens the store, builds the conversation pipeline, and serves
// HTTP until the context is cancelled or a goodbye turn requests shutdown.
func runServe(cmd *cobra.Command) error {
	cfg := config.FromEnv()

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	srv, st, err := buildServer(cmd, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting server", "addr", cfg.Addr)
	return srv.Run(ctx)
}

// buildServer wires the store, LLM provider, and pipeline collaborators.
// The returned store must be closed by the caller.
func buildServer(cmd *cobra.Command, cfg config.Config, log *logging.Logger) (*server.Server, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	log.Info("store opened", "db", dbPath)

	deps := server.Deps{
		Logger:   log,
		Profiles: st.ProfileRepo(),
		Events:   st.EventRepo(),
	}

	// The pipeline works without an LLM: lessons and drills are
	// deterministic, only emotion and free chat go dark.
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		log.Warn("LLM provider not configured, free chat disabled", "err", err)
	} else {
		deps.Emotions = emotion.NewClassifier(provider)
		deps.Persona = persona.NewAgent(provider, persona.NewKnowledgeBase(cfg.KnowledgeRoot))
	}

	return server.New(cfg, deps), st, nil
}
