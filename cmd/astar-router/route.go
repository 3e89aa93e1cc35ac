package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/routing"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

type routeOutput struct {
	Navigator   string         `json:"navigator" yaml:"navigator"`
	Origin      coordinate     `json:"origin" yaml:"origin"`
	Destination coordinate     `json:"destination" yaml:"destination"`
	Reachable   bool           `json:"reachable" yaml:"reachable"`
	Length      float64        `json:"length" yaml:"length"`
	Nodes       []graph.NodeId `json:"nodes" yaml:"nodes"`
	Waypoints   []coordinate   `json:"waypoints" yaml:"waypoints"`
}

func routeCmd() *cobra.Command {
	var from, to, navigator, output string

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute the shortest route between two coordinates",
		Example: "  astar-router route --graph stuttgart.fmi --from 48.78,9.18 --to 48.74,9.10\n" +
			"  astar-router route --from 48.78,9.18 --to 48.74,9.10 --navigator reference --output yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			origin, err := parseCoordinate(from)
			if err != nil {
				return err
			}
			destination, err := parseCoordinate(to)
			if err != nil {
				return err
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if navigator == "" {
				navigator = cfg.Search.Navigator
			}

			g, err := loadGraph(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			router, err := routing.NewRouter(g, navigator, logger)
			if err != nil {
				return err
			}
			route, err := router.ComputeRoute(origin, destination)
			if err != nil {
				return err
			}
			return writeRoute(cmd.OutOrStdout(), navigator, route, output)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "origin as lat,lon")
	cmd.Flags().StringVar(&to, "to", "", "destination as lat,lon")
	cmd.Flags().StringVar(&navigator, "navigator", "", "astar, dijkstra or reference (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml, geojson)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func writeRoute(w io.Writer, navigator string, route routing.Route, format string) error {
	if format == "geojson" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(route.GeoJSON())
	}

	out := routeOutput{
		Navigator:   navigator,
		Origin:      coordinate{Lat: route.Origin.Lat(), Lon: route.Origin.Lon()},
		Destination: coordinate{Lat: route.Destination.Lat(), Lon: route.Destination.Lon()},
		Reachable:   route.Exists,
		Length:      route.Length,
		Nodes:       route.Nodes,
		Waypoints:   make([]coordinate, 0, len(route.Waypoints)),
	}
	for _, p := range route.Waypoints {
		out.Waypoints = append(out.Waypoints, coordinate{Lat: p.Lat(), Lon: p.Lon()})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid --output %q (use: json, yaml, geojson)", format)
	}
}
