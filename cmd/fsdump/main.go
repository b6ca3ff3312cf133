package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/logger"
	"go.uber.org/zap/zapcore"
)

type globalCmd struct {
	Credentials string        `help:"Service account credential file. If empty, Application Default Credentials are used." env:"FSDUMP_CREDENTIALS" default:"${default_credentials}"`
	ProjectID   string        `name:"project" help:"GCP project ID. Defaults to the project named in the credential file." env:"GCP_PROJECT"`
	Database    string        `help:"Firestore database ID." env:"FSDUMP_DATABASE" default:"(default)"`
	Timeout     time.Duration `help:"Give up after this long. Zero means wait forever." default:"0"`
	LogLevel    zapcore.Level `help:"Minimum log level (debug, info, warn, error)." env:"FSDUMP_LOG_LEVEL" default:"info"`
	LogJSON     bool          `help:"Write logs as JSON."`
}

func (g *globalCmd) newContext() (context.Context, context.CancelFunc) {
	if g.Timeout > 0 {
		return context.WithTimeout(context.Background(), g.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (g *globalCmd) clientConfig() firestore.ClientConfig {
	return firestore.ClientConfig{
		CredentialsFile: g.Credentials,
		ProjectID:       g.ProjectID,
		DatabaseID:      g.Database,
	}
}

type cli struct {
	globalCmd

	Dump        dumpCmd        `cmd:"" default:"withargs" help:"Print every document in a collection (default)."`
	Collections collectionsCmd `cmd:"" help:"List top-level collections."`
	Export      exportCmd      `cmd:"" help:"Export a collection as JSON Lines or an Excel workbook."`
}

var CLI cli

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(c, append([]kong.Option{
		kong.Name("fsdump"),
		kong.Description("Read-only dumper for Cloud Firestore collections."),
		kong.UsageOnError(),
		kong.Vars{
			"default_credentials": firestore.DEFAULT_CREDENTIALS,
			"default_collection":  firestore.DEFAULT_COLLECTION,
		},
	}, options...)...)
}

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	parser, err := newParser(&CLI)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	logger.Init(CLI.LogLevel, CLI.LogJSON)

	err = ctx.Run(&CLI.globalCmd)
	logger.Sync()
	ctx.FatalIfErrorf(err)
}
