package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/internal/store"
	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	cfgFile   string
	graphFile string
	logFormat string
	logLevel  string
	logger    *slog.Logger
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "astar-router",
		Short: "Shortest paths on road networks with A*",
		Long:  "Import OpenStreetMap road networks, compute shortest routes with A* or Dijkstra and serve them over HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			opts := &slog.HandlerOptions{Level: level}
			switch logFormat {
			case "json":
				logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
			case "text":
				logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
			default:
				return fmt.Errorf("invalid --log-format %q (use: text, json)", logFormat)
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./astar-router.yaml)")
	root.PersistentFlags().StringVar(&graphFile, "graph", "", "FMI graph file (overrides the database)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format (text, json)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		importCmd(),
		routeCmd(),
		serveCmd(),
		benchmarkCmd(),
		versionCmd(),
	)
	return root
}

// loadGraph reads the graph from the FMI file given by --graph or
// graph.file, falling back to the SQLite database at graph.db.
func loadGraph(ctx context.Context, cfg *config.Config) (graph.Graph, error) {
	file := cfg.Graph.File
	if graphFile != "" {
		file = graphFile
	}
	if file != "" {
		g, err := graph.NewAdjacencyArrayFromFmiFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading graph %s: %w", file, err)
		}
		logger.Info("graph loaded", "file", file, "nodes", g.NodeCount(), "arcs", g.ArcCount())
		return g, nil
	}

	s, err := store.NewSQLiteStore(cfg.Graph.DB)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	g, err := s.LoadGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph from %s: %w", cfg.Graph.DB, err)
	}
	logger.Info("graph loaded", "db", cfg.Graph.DB, "nodes", g.NodeCount(), "arcs", g.ArcCount())
	return graph.NewAdjacencyArrayFromGraph(g), nil
}

// parseCoordinate reads "lat,lon" in degrees.
func parseCoordinate(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("invalid coordinate %q (use: lat,lon)", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return orb.Point{}, fmt.Errorf("coordinate %q is out of range", s)
	}
	return orb.Point{lon, lat}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "astar-router %s\n", version)
		},
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (use: debug, info, warn, error)", s)
	}
}
