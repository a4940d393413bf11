// Command osspush uploads a local file or directory tree to an
// S3-compatible bucket using a temporary credential issued by a signed
// token exchange. It is a thin shell around the osspush library: it collects
// flags and environment variables, wires a logger, and maps the run outcome
// to the process exit code.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/deploykit/osspush"
)

func main() {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "osspush",
		Usage: "upload a file or directory tree to an object-storage bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "access-key",
				Usage:    "access key for the token exchange",
				EnvVars:  []string{"OSSPUSH_ACCESS_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "secret-key",
				Usage:    "secret key for the token exchange",
				EnvVars:  []string{"OSSPUSH_SECRET_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "bucket",
				Usage:    "bucket name the credential is scoped to",
				EnvVars:  []string{"OSSPUSH_BUCKET"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "path",
				Usage:    "local file or directory to upload",
				EnvVars:  []string{"OSSPUSH_PATH"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "prefix",
				Usage:   "optional remote key prefix",
				EnvVars: []string{"OSSPUSH_PREFIX"},
			},
			&cli.StringFlag{
				Name:     "api-url",
				Usage:    "base URL of the token-issuing API",
				EnvVars:  []string{"OSSPUSH_API_URL"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "enable debug logging",
				EnvVars: []string{"OSSPUSH_VERBOSE"},
			},
		},
		Action: func(c *cli.Context) error {
			log := logger
			if !c.Bool("verbose") {
				log = logger.Level(zerolog.InfoLevel)
			}

			_, err := osspush.Run(c.Context, osspush.Input{
				AccessKey: c.String("access-key"),
				SecretKey: c.String("secret-key"),
				Bucket:    c.String("bucket"),
				LocalPath: c.String("path"),
				Prefix:    c.String("prefix"),
			},
				osspush.WithAPIBaseURL(c.String("api-url")),
				osspush.WithLogger(log),
			)
			return err
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logger.Error().Msg(err.Error())
		os.Exit(1)
	}
}
