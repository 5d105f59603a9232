package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/database"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/web"
	"github.com/partyhub/party-panel/web/session"
	"github.com/spf13/cobra"
)

func loadConfig() *config.Config {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	level, err := logger.ParseLevel(string(cfg.EffectiveLogLevel()))
	if err != nil {
		log.Fatal("unknown log level:", cfg.LogLevel)
	}
	logger.InitLogger(level, cfg.LogFolder)
	return cfg
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	cfg := loadConfig()
	defer logger.CloseLogger()

	server := web.NewServer(cfg)
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Notice("reloading configuration")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			cfg = loadConfig()
			server = web.NewServer(cfg)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func checkRemote() {
	cfg := loadConfig()
	api := remote.NewClient(cfg.APIURL, cfg.APITimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	defer cancel()
	if err := api.Ping(ctx); err != nil {
		fmt.Printf("party API at %s is unreachable: %v\n", api.BaseURL(), err)
		os.Exit(1)
	}
	fmt.Printf("party API at %s is up\n", api.BaseURL())
}

func purgeSessions() {
	cfg := loadConfig()
	if cfg.SessionStore != config.SessionStoreDatabase {
		fmt.Printf("session store is %s, nothing to purge\n", cfg.SessionStore)
		return
	}
	if err := database.InitDB(&cfg.Database); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	n, err := session.PurgeExpired(context.Background(), database.GetDB(), time.Now())
	if err != nil {
		log.Fatal("purge sessions:", err)
	}
	fmt.Printf("purged %d expired sessions\n", n)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "party-panel",
		Short: "Administration panel for the party booking API",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check that the party API is reachable",
		Run: func(cmd *cobra.Command, args []string) {
			checkRemote()
		},
	}

	var sessionCmd = &cobra.Command{
		Use:   "session",
		Short: "Session store maintenance",
	}

	var purgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions from the database store",
		Run: func(cmd *cobra.Command, args []string) {
			purgeSessions()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the panel version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetName(), config.GetVersion())
		},
	}

	sessionCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(runCmd, checkCmd, sessionCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
