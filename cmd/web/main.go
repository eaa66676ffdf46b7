package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/med-tools/clinreport/pkg/server"
	"github.com/med-tools/clinreport/pkg/services/config"
	"github.com/med-tools/clinreport/pkg/services/export"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the report service",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.clinreportcfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the endpoint profile file (default is $HOME/.clinreportcfg)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "default",
		"Endpoint profile for the report delivery service")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	endpoint, err := registry.GetEndpoint(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to resolve delivery endpoint: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	profiles, _ := registry.GetProfiles(ctx)
	for _, p := range profiles {
		logger.Info().Msgf("Profile available: `%s`", p)
	}

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Mailer: export.NewMailer(endpoint.Host, nil),
			Logger: logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
