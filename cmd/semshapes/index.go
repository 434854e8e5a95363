package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshapes/astindex"
	"github.com/c360studio/semshapes/graph"
	"github.com/c360studio/semshapes/rdf"

	// Register extractors via init()
	_ "github.com/c360studio/semshapes/astindex/golang"
	_ "github.com/c360studio/semshapes/astindex/python"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	var (
		outputPath string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "index [patterns...]",
		Short: "Extract code entities from source trees",
		Long: `Index walks the given directory patterns (default: the configured
index paths), extracts entities from every supported source file, and
prints the resulting graph as Turtle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.setupLogging()

			cfg, err := opts.loadConfig(logger)
			if err != nil {
				return err
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = cfg.Index.Paths
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			indexer := astindex.NewIndexer(cfg.Index.RepoRoot, logger)
			g, results, err := indexer.IndexPatterns(ctx, patterns)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			encoded := rdf.EncodeTurtle(g, rdf.DefaultPrefixes())
			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(encoded), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				logger.Info("Graph written", "path", outputPath, "triples", g.Len())
			} else {
				fmt.Println(encoded)
			}

			if publish {
				if cfg.NATS.URL == "" {
					return fmt.Errorf("--publish requires nats.url in config")
				}
				client, err := connectNATS(ctx, cfg.NATS.URL, logger)
				if err != nil {
					return err
				}
				defer client.Close(ctx)

				if err := graph.PublishIndex(ctx, client, results); err != nil {
					return err
				}
				logger.Info("Index published", "modules", len(results))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the graph to a file instead of stdout")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish indexed entities over NATS")

	return cmd
}
