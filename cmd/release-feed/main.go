// HTTP server answering the version checks and the Sparkle feed of a GitHub repository
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxisme/releasefeed"
	"github.com/maxisme/releasefeed/cmd"
)

func main() {
	var configPath, listen, repository string
	var verbose bool
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&listen, "listen", "", "IP address and port used for the HTTP server")
	flag.StringVar(&repository, "repo", "", "GitHub repository to read the releases from ('owner/name' or URL)")
	flag.BoolVar(&verbose, "v", false, "Display debugging information")
	flag.Parse()

	config, err := cmd.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if listen != "" {
		config.Listen = listen
	}
	if repository != "" {
		config.Repository = repository
	}

	logger, err := cmd.SetupLogger(os.Stderr, config.LogLevel, config.LogFormat, verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(logger, config); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, config cmd.Config) error {
	source, repo, err := cmd.GetSource(config.Repository, config.GitHubAPIURL, config.MirrorURL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cache writes must not be cancelled by the end of a request, only awaited on shutdown
	background := releasefeed.NewBackground(context.Background())
	handler, err := releasefeed.NewHandler(releasefeed.Config{
		Source:         source,
		Cache:          releasefeed.NewMemoryCache(config.CacheSize),
		Runner:         background,
		Repository:     repo,
		MaxAge:         config.CacheMaxAge,
		AssetSubstring: config.AssetSubstring,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", WithLogging(logger, handler))
	server := http.Server{
		Addr:              config.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", "http://"+config.Listen, "repository", repo.String())
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return shutdown(shutdownCtx, logger, &server, background)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type waiter interface {
	Wait()
}

// shutdown stops the server, then waits for the pending cache writes.
// When some requests are still running after ctx is done, they can start new writes,
// so the pending writes are abandoned instead.
func shutdown(ctx context.Context, logger *slog.Logger, server shutdowner, background waiter) error {
	err := server.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("requests still running, pending cache writes abandoned", "error", err)
		return err
	}
	background.Wait()
	return nil
}
