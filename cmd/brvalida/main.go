package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"winsbygroup.com/brvalida/internal/config"
	"winsbygroup.com/brvalida/internal/logger"
	"winsbygroup.com/brvalida/internal/server"
	"winsbygroup.com/brvalida/internal/sqlite"
	"winsbygroup.com/brvalida/internal/version"
)

func main() {
	fmt.Println(version.Banner())

	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file")
	routesFlag := flag.Bool("routes", false, "print routes and exit")
	schemaFlag := flag.Bool("schema", false, "print the sqlite schema and exit")
	emptyFlag := flag.Bool("empty", false, "start without the seed customers")
	flag.Parse()

	if *schemaFlag {
		fmt.Print(sqlite.Schema())
		os.Exit(0)
	}

	//
	// Load configuration
	//
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *emptyFlag {
		cfg.Seed = false
	}

	l := logger.Setup(cfg.LogLevel, cfg.LogPretty)
	l.Info().Str("source", cfg.Source).Str("store", cfg.Store).Msg("configuration loaded")

	//
	// Build server (Echo, store, CEP client, etc.)
	//
	srv, err := server.Build(cfg, l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to build server")
	}
	defer srv.Close()

	//
	// Routes inspection mode
	//
	if *routesFlag {
		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Printf("%-6s %s\n", r.Method, r.Path)
		}

		return
	}

	//
	// Normal server startup
	//
	go func() {
		l.Info().Str("addr", cfg.Addr).Msgf("Servidor rodando na porta %s", cfg.Addr)
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown failed")
		return
	}
	l.Info().Msg("server stopped")
}
