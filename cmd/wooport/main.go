package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wooport/wooport/config"
)

func main() {
	var a *app

	cliApp := &cli.App{
		Name:  "wooport",
		Usage: "move a WooCommerce shop into an existing Ecwid catalog",
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a = newApp(cfg, config.NewLogger(cfg.Log), os.Stdout)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "unpack",
				Usage:     "extract database.sql and product files from a .wpress archive",
				ArgsUsage: "<file.wpress> [output-dir]",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return cli.Exit("Usage: wooport unpack <file.wpress> [output-dir]", 1)
					}
					outDir := c.Args().Get(1)
					if outDir == "" {
						outDir = defaultUnpackDir
					}
					_, err := a.runUnpack(c.Context, c.Args().Get(0), outDir)
					return err
				},
			},
			{
				Name:      "extract",
				Usage:     "extract published products from the shop database dump",
				ArgsUsage: "[database.sql] [output.csv]",
				Action: func(c *cli.Context) error {
					dumpPath := argOr(c, 0, a.cfg.Extract.DumpPath)
					outputPath := argOr(c, 1, a.cfg.Extract.OutputPath)
					_, err := a.runExtract(c.Context, dumpPath, outputPath)
					return err
				},
			},
			{
				Name:      "reconcile",
				Usage:     "match extracted products against the catalog export and write import and redirect files",
				ArgsUsage: "[catalog.csv] [products.csv] [output-dir]",
				Action: func(c *cli.Context) error {
					catalogPath := argOr(c, 0, a.cfg.Reconcile.CatalogPath)
					productsPath := argOr(c, 1, a.cfg.Reconcile.ProductsPath)
					outputDir := argOr(c, 2, a.cfg.Reconcile.OutputDir)
					_, err := a.runReconcile(c.Context, catalogPath, productsPath, outputDir)
					return err
				},
			},
			{
				Name:      "serve",
				Usage:     "serve the generated redirects locally for review",
				ArgsUsage: "[redirects-vercel.json]",
				Action: func(c *cli.Context) error {
					return a.runServe(argOr(c, 0, a.cfg.Server.RedirectsPath))
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// argOr returns positional argument i, or fallback when it was not given
func argOr(c *cli.Context, i int, fallback string) string {
	if v := c.Args().Get(i); v != "" {
		return v
	}
	return fallback
}
