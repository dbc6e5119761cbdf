// Runs the release feed handler once, without a server:
// prints whether an update is available for a version, or the feed of the latest release.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"

	"github.com/maxisme/releasefeed"
	"github.com/maxisme/releasefeed/cmd"
)

func usage() {
	fmt.Fprint(os.Stderr, `Usage: check-version [flags] [version]

  Without {version}, the Sparkle feed of the latest release is printed.
  With {version}, the exit code is 0 when a newer release is available, 1 otherwise.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var configPath, repository string
	var develop, verbose bool
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&repository, "repo", "", "GitHub repository to read the releases from ('owner/name' or URL)")
	flag.BoolVar(&develop, "develop", false, "Look at pre-releases instead of stable releases")
	flag.BoolVar(&verbose, "v", false, "Display debugging information")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	config, err := cmd.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if repository != "" {
		config.Repository = repository
	}
	if _, err := cmd.SetupLogger(os.Stderr, config.LogLevel, config.LogFormat, verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	source, repo, err := cmd.GetSource(config.Repository, config.GitHubAPIURL, config.MirrorURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	background := releasefeed.NewBackground(context.Background())
	handler, err := releasefeed.NewHandler(releasefeed.Config{
		Source:         source,
		Runner:         background,
		Repository:     repo,
		AssetSubstring: config.AssetSubstring,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	query := url.Values{}
	if develop {
		query.Set("develop", "")
	}
	if flag.NArg() == 1 {
		query.Set("version", flag.Arg(0))
	}
	req := httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil)
	req.Header.Set("User-Agent", "check-version")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	background.Wait()

	switch {
	case recorder.Code == http.StatusOK && flag.NArg() == 1:
		fmt.Printf("A newer version than %s is available\n", flag.Arg(0))
	case recorder.Code == http.StatusOK:
		fmt.Println(recorder.Body.String())
	case recorder.Code == http.StatusNotFound && recorder.Body.Len() == 0:
		fmt.Printf("Version %s is the latest\n", flag.Arg(0))
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, recorder.Body.String())
		os.Exit(2)
	}
}
