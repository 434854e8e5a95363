package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/semshapes/astindex"
	"github.com/c360studio/semshapes/config"
	"github.com/c360studio/semshapes/engine"
	"github.com/c360studio/semshapes/graph"
	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/shapes"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		graphPath  string
		shapeGlobs []string
		focusIRIs  []string
		workers    int
		publish    bool
		watch      bool
		runID      string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a graph against shape constraints",
		Long: `Validate loads a Turtle graph and a set of shape definitions, runs
every shape against its target nodes, and prints the validation report
as Turtle on stdout. The exit code is non-zero when the report carries
violations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.setupLogging()

			cfg, err := opts.loadConfig(logger)
			if err != nil {
				return err
			}
			if len(shapeGlobs) > 0 {
				cfg.Shapes.Paths = shapeGlobs
			}
			if workers > 0 {
				cfg.Validation.Workers = workers
			}

			focus := make([]rdf.Term, 0, len(focusIRIs))
			for _, iri := range focusIRIs {
				focus = append(focus, rdf.NewIRI(iri))
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			var nc *natsclient.Client
			if publish {
				if cfg.NATS.URL == "" {
					return fmt.Errorf("--publish requires nats.url in config")
				}
				client, err := connectNATS(ctx, cfg.NATS.URL, logger)
				if err != nil {
					return err
				}
				defer client.Close(ctx)
				nc = client
			}

			eng := engine.New(
				engine.WithWorkers(cfg.Validation.Workers),
				engine.WithLogger(logger),
			)

			// Shapes are reloaded per run so watch mode picks up edits.
			run := func() (bool, error) {
				runCtx, runCancel := context.WithTimeout(ctx, cfg.Validation.QueryTimeout)
				defer runCancel()

				shapeList, err := shapes.LoadGlob(cfg.Shapes.Paths...)
				if err != nil {
					return false, fmt.Errorf("load shapes: %w", err)
				}
				if len(shapeList) == 0 {
					return false, fmt.Errorf("no shapes matched %v", cfg.Shapes.Paths)
				}
				logger.Info("Shapes loaded", "count", len(shapeList))

				data, err := os.ReadFile(graphPath)
				if err != nil {
					return false, fmt.Errorf("read graph: %w", err)
				}
				g, err := rdf.DecodeTurtle(string(data))
				if err != nil {
					return false, fmt.Errorf("parse graph: %w", err)
				}

				rep, err := eng.Validate(runCtx, g, shapeList, focus...)
				if err != nil {
					return false, fmt.Errorf("validate: %w", err)
				}

				fmt.Println(rep.Encode())

				if nc != nil {
					id := runID
					if id == "" {
						id = uuid.New().String()
					}
					if err := graph.PublishReport(ctx, nc, rep, id); err != nil {
						return false, err
					}
					logger.Info("Report published", "entity_id", graph.ReportEntityID(id))
				}
				return rep.HasViolations(), nil
			}

			if watch {
				return watchAndValidate(ctx, graphPath, cfg, logger, run)
			}

			violated, err := run()
			if err != nil {
				return err
			}
			if violated {
				return fmt.Errorf("graph does not conform")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "Turtle graph file to validate (required)")
	cmd.Flags().StringSliceVar(&shapeGlobs, "shapes", nil, "Shape file globs (overrides config)")
	cmd.Flags().StringSliceVar(&focusIRIs, "focus", nil, "Validate only these focus node IRIs")
	cmd.Flags().IntVar(&workers, "workers", 0, "Validation worker count (overrides config)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the report over NATS")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate when the graph or shapes change")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier for published reports (default: random)")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

// watchAndValidate re-runs validation whenever files under the graph's
// or the shapes' directories change. In watch mode a non-conforming run
// is reported but does not stop the watch.
func watchAndValidate(ctx context.Context, graphPath string, cfg *config.Config, logger *slog.Logger, run func() (bool, error)) error {
	roots := watchRoots(graphPath, cfg.Shapes.Paths)

	watcher, err := astindex.NewWatcher(astindex.WatcherConfig{
		Roots:  roots,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = watcher.Stop() }()

	logger.Info("Watching for changes", "roots", roots)

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			logger.Info("Change detected, re-validating", "files", len(paths))
			violated, err := run()
			if err != nil {
				logger.Error("Validation run failed", "error", err)
				continue
			}
			if violated {
				logger.Warn("Graph does not conform")
			}
		}
	}
}

// watchRoots derives the directories to watch from the graph file and
// the shape glob patterns.
func watchRoots(graphPath string, shapeGlobs []string) []string {
	seen := make(map[string]bool)
	var roots []string

	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		roots = append(roots, dir)
	}

	add(filepath.Dir(graphPath))
	for _, pattern := range shapeGlobs {
		add(globBase(pattern))
	}
	return roots
}

// globBase returns the longest directory prefix of a glob pattern that
// contains no metacharacters.
func globBase(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[{") {
		dir = filepath.Dir(dir)
		if dir == "." || dir == string(filepath.Separator) {
			break
		}
	}
	return dir
}
