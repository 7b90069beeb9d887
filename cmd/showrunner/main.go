package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	chromem "github.com/philippgille/chromem-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/server"
	"github.com/showrunnerhq/showrunner/server/profile"
	"github.com/showrunnerhq/showrunner/store"
	"github.com/showrunnerhq/showrunner/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "showrunner",
	Short: "Production office server for film and TV projects",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		prof, err := profile.GetProfile()
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		driver, err := db.NewDriver(prof)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		st := store.New(driver)
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		var vs *vectorstore.Store
		if prof.OpenRouterAPIKey != "" {
			embedFn := chromem.NewEmbeddingFuncOpenAICompat(
				"https://openrouter.ai/api/v1", prof.OpenRouterAPIKey, "text-embedding-3-small", nil,
			)
			vs, err = vectorstore.New(prof.Data, embedFn)
			if err != nil {
				slog.Warn("vector store unavailable, semantic search disabled", "err", err)
			}
		}

		srv := server.NewServer(prof, st, vs)
		return srv.Start(ctx)
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("mode", "dev", "dev or prod")
	rootCmd.PersistentFlags().String("addr", "", "bind address")
	rootCmd.PersistentFlags().Int("port", 8081, "bind port")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver: sqlite, postgres, mysql")
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")
	rootCmd.PersistentFlags().String("model", "openai/gpt-4o-mini", "completion model")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "model"} {
		_ = viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	}
	_ = viper.BindEnv("openrouter-api-key", "OPENROUTER_API_KEY")

	viper.SetEnvPrefix("showrunner")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
