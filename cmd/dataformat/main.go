package main

import (
	"context"
	"io"
	"os"

	"github.com/thrustcurve/dataformat"
	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/config"
	"github.com/thrustcurve/dataformat/formatter"
	"github.com/thrustcurve/dataformat/internal"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		internal.Logger.Fatal().Err(err).Send()
	}
}

func newApp(out io.Writer) *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to config.yml",
	}
	catalogFlag := &cli.StringFlag{
		Name:  "catalog",
		Usage: "catalog file or http(s) URL, overrides the config",
	}

	return &cli.App{
		Name:   "dataformat",
		Usage:  "serve motor catalog documents as XML or JSON",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Flags: []cli.Flag{
					configFlag,
					catalogFlag,
					&cli.IntFlag{Name: "port", Usage: "listen port, overrides the config"},
				},
				Action: serve,
			},
			{
				Name:      "render",
				Usage:     "render one document to standard output",
				ArgsUsage: "metadata | motor <id>",
				Flags: []cli.Flag{
					configFlag,
					catalogFlag,
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "xml", Usage: "xml or json"},
					&cli.BoolFlag{Name: "compat", Usage: "write integer identifiers (XML only)"},
				},
				Action: render,
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if port := c.Int("port"); port != 0 {
		cfg.Server.Port = port
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	internal.InitLogging(cfg.Logging.Level, cfg.Logging.Console)

	cat, err := newFetcher().loadCatalog(contextOf(c), cfg.Catalog.Path)
	if err != nil {
		return err
	}

	s := dataformat.NewServer(cfg, cat, nil)
	s.Start()
	dataformat.HandleGracefulShutdown(s)
	return nil
}

func render(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	kind, err := formatter.ParseKind(c.String("format"))
	if err != nil {
		return err
	}

	cat, err := newFetcher().loadCatalog(contextOf(c), cfg.Catalog.Path)
	if err != nil {
		return err
	}

	w, err := formatter.New(kind, formatter.Options{
		Compat: c.Bool("compat"),
		Indent: cfg.Server.Indent,
	})
	if err != nil {
		return err
	}

	switch doc := c.Args().First(); doc {
	case "metadata":
		err = dataformat.WriteMetadata(w, cat)
	case "motor":
		err = writeMotor(w, cat, c.Args().Get(1))
	default:
		return xerrors.Errorf("unknown document %q, want metadata or motor", doc)
	}
	if err != nil {
		return err
	}

	_, err = c.App.Writer.Write(append(w.Render(), '\n'))
	return err
}

func writeMotor(w formatter.Writer, cat *catalog.Catalog, id string) error {
	if id == "" {
		return xerrors.New("motor needs an id")
	}
	m, ok := cat.Get(id)
	if !ok {
		return xerrors.Errorf("no such motor: %s", id)
	}
	return dataformat.WriteMotor(w, m)
}

func contextOf(c *cli.Context) context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// loadConfig reads the config file named by --config, or the defaults when
// the flag is not set. The --catalog flag replaces the catalog location.
func loadConfig(c *cli.Context) (config.AppConfig, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		if err := config.LoadAppConfig(path); err != nil {
			return cfg, err
		}
		cfg = config.Config
	}
	if loc := c.String("catalog"); loc != "" {
		cfg.Catalog.Path = loc
	}
	return cfg, nil
}
