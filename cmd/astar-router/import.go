package main

import (
	"context"
	"fmt"
	"time"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/internal/osmimport"
	"github.com/natevvv/astar-routing/internal/store"
	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/road"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var fmiOut string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import <file.osm.pbf|file.osm>",
		Short: "Build a road graph from an OpenStreetMap extract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.Graph.DB
			}
			return importGraph(cmd.Context(), args[0], dbPath, fmiOut)
		},
	}

	cmd.Flags().StringVar(&fmiOut, "fmi", "", "also write the graph to this FMI file")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default from config)")
	return cmd
}

func importGraph(ctx context.Context, osmFile, dbPath, fmiOut string) error {
	start := time.Now()
	importer := osmimport.NewRoadImporter(osmFile, logger)
	if err := importer.Import(ctx); err != nil {
		return fmt.Errorf("importing %s: %w", osmFile, err)
	}
	logger.Info("import finished", "roads", len(importer.Roads()), "duration", time.Since(start))

	start = time.Now()
	g, err := road.BuildGraph(importer.Roads())
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	logger.Info("graph built", "nodes", g.NodeCount(), "arcs", g.ArcCount(), "duration", time.Since(start))

	if fmiOut != "" {
		if err := graph.WriteFmiFile(g, fmiOut); err != nil {
			return fmt.Errorf("writing %s: %w", fmiOut, err)
		}
		logger.Info("graph written", "file", fmiOut)
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	if err := s.SaveGraph(ctx, g); err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}
	nodes, arcs, err := s.Stats(ctx)
	if err != nil {
		return fmt.Errorf("reading database stats: %w", err)
	}
	logger.Info("graph stored", "db", dbPath, "nodes", nodes, "arcs", arcs)
	return nil
}
