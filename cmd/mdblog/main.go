// Command mdblog renders or serves a blog kept as a directory of Markdown
// files.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"

	"github.com/thomas11/mdblog"
)

var CLI struct {
	Config  string `short:"c" help:"Site configuration file (YAML, JSON or TOML). Defaults apply without one." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build struct {
		Watch bool `short:"w" help:"Keep running and re-render the site on changes to the posts directory."`
	} `cmd:"" default:"1" help:"Render the site into the output directory"`

	Serve struct {
		Listen string `short:"l" help:"Address to listen on, overrides the configuration"`
	} `cmd:"" help:"Serve the blog straight from the posts directory"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mdblog"),
		kong.Description("A blog from a directory of Markdown files."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	conf, err := readConf(CLI.Config)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "build":
		if err := renderSite(conf, logger); err != nil {
			logger.Error("Build failed", "error", err)
			os.Exit(1)
		}
		if CLI.Build.Watch {
			if err := rerenderOnChange(conf, logger); err != nil {
				logger.Error("Watching failed", "error", err)
				os.Exit(1)
			}
		}
	case "serve":
		if CLI.Serve.Listen != "" {
			conf.SetListen(CLI.Serve.Listen)
		}
		if !CLI.Verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		server, err := mdblog.NewServer(conf, mdblog.NewMetrics(nil), logger)
		if err != nil {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
		if err := server.ListenAndServe(); err != nil {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	default:
		ctx.FatalIfErrorf(ctx.PrintUsage(false))
	}
}

func readConf(path string) (*mdblog.SiteConf, error) {
	if path == "" {
		return mdblog.DefaultConf()
	}
	return mdblog.ReadConf(path)
}

func renderSite(conf *mdblog.SiteConf, logger *slog.Logger) error {
	site, err := mdblog.ReadSite(conf, nil, logger)
	if err != nil {
		return err
	}

	logger.Info("Writing site", slog.String("dir", conf.OutDir))
	if err = site.RenderAll(); err != nil {
		return err
	}
	return site.CopyStaticFiles()
}
