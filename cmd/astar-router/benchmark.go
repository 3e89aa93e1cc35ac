package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/graph/path"
	"github.com/spf13/cobra"
)

// target is a benchmark query together with the reference result.
// Length is -1 if the destination is unreachable.
type target struct {
	Origin      graph.NodeId
	Destination graph.NodeId
	Length      float64
	Hops        int
}

const lengthTolerance = 1e-6

func benchmarkCmd() *cobra.Command {
	var (
		navigator    string
		targetFile   string
		random       bool
		amount       int
		storeTargets bool
		seed         int64
		cpuProfile   string
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare a navigator against the reference Dijkstra on a set of queries",
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			if g.NodeCount() == 0 {
				return fmt.Errorf("graph has no nodes")
			}
			nav, err := path.NewNavigator(navigator, g, logger)
			if err != nil {
				return err
			}
			reference := path.NewDijkstra(g)

			var targets []target
			if random || targetFile == "" {
				if seed == 0 {
					seed = time.Now().UnixNano()
				}
				targets, err = createTargets(amount, reference, rand.New(rand.NewSource(seed)))
				if err != nil {
					return err
				}
				if storeTargets && targetFile != "" {
					if err := writeTargetFile(targets, targetFile); err != nil {
						return err
					}
				}
			} else {
				targets, err = readTargetFile(targetFile)
				if err != nil {
					return err
				}
				if amount < len(targets) {
					targets = targets[:amount]
				}
			}

			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer pprof.StopCPUProfile()
			}

			result, err := benchmark(nav, targets)
			if err != nil {
				return err
			}
			result.print(cmd.OutOrStdout())
			if !result.valid() {
				return fmt.Errorf("%s returned results differing from the reference", navigator)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&navigator, "navigator", "", "navigator to benchmark (default from config)")
	cmd.Flags().StringVar(&targetFile, "targets", "", "file with the queries (origin destination length hops)")
	cmd.Flags().BoolVar(&random, "random", false, "create new random queries")
	cmd.Flags().IntVarP(&amount, "count", "n", 100, "number of queries")
	cmd.Flags().BoolVar(&storeTargets, "store", false, "store newly created queries in --targets")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for random queries (default: current time)")
	cmd.Flags().StringVar(&cpuProfile, "cpu-profile", "", "write a cpu profile to file")
	return cmd
}

func createTargets(n int, reference *path.Dijkstra, rng *rand.Rand) ([]target, error) {
	targets := make([]target, n)
	nodeCount := reference.GetGraph().NodeCount()
	for i := 0; i < n; i++ {
		origin := rng.Intn(nodeCount)
		destination := rng.Intn(nodeCount)
		length, err := reference.ComputeShortestPath(origin, destination)
		if err != nil {
			return nil, err
		}
		hops := len(reference.GetPath(origin, destination))
		targets[i] = target{Origin: origin, Destination: destination, Length: length, Hops: hops}
	}
	return targets, nil
}

func readTargets(r io.Reader) ([]target, error) {
	scanner := bufio.NewScanner(r)
	targets := make([]target, 0)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 || line[0] == '#' {
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.Origin, &t.Destination, &t.Length, &t.Hops); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		targets = append(targets, t)
	}
	return targets, scanner.Err()
}

func readTargetFile(filename string) ([]target, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readTargets(file)
}

func writeTargets(targets []target, w io.Writer) error {
	writer := bufio.NewWriter(w)
	for _, t := range targets {
		if _, err := fmt.Fprintf(writer, "%v %v %v %v\n", t.Origin, t.Destination, t.Length, t.Hops); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func writeTargetFile(targets []target, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writeTargets(targets, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type benchmarkResult struct {
	completed       int
	runtime         time.Duration
	runtimeWithPath time.Duration
	pqPops          int
	edgeRelaxations int
	invalidLengths  []int
	invalidResults  []int
	invalidHops     []int
}

// benchmark runs every query on navigator and checks it against the
// reference result stored in the query.
func benchmark(navigator path.Navigator, targets []target) (benchmarkResult, error) {
	var result benchmarkResult
	for i, t := range targets {
		start := time.Now()
		length, err := navigator.ComputeShortestPath(t.Origin, t.Destination)
		elapsed := time.Since(start)
		if err != nil {
			return result, fmt.Errorf("query %d (%v -> %v): %w", i, t.Origin, t.Destination, err)
		}
		p := navigator.GetPath(t.Origin, t.Destination)
		elapsedPath := time.Since(start)

		result.pqPops += navigator.GetPqPops()
		result.edgeRelaxations += navigator.GetEdgeRelaxations()
		logger.Debug("query finished",
			"query", i, "navigate", elapsed, "withPath", elapsedPath,
			"pqPops", navigator.GetPqPops(), "relaxedEdges", navigator.GetEdgeRelaxations())

		if math.Abs(length-t.Length) > lengthTolerance*math.Max(1, t.Length) {
			result.invalidLengths = append(result.invalidLengths, i)
		}
		if length > -1 && (len(p) == 0 || p[0] != t.Origin || p[len(p)-1] != t.Destination) {
			result.invalidResults = append(result.invalidResults, i)
		}
		if len(p) != t.Hops {
			result.invalidHops = append(result.invalidHops, i)
		}

		result.runtime += elapsed
		result.runtimeWithPath += elapsedPath
		result.completed++
	}
	return result, nil
}

func (r benchmarkResult) valid() bool {
	return len(r.invalidLengths) == 0 && len(r.invalidResults) == 0
}

func (r benchmarkResult) print(w io.Writer) {
	if r.completed == 0 {
		fmt.Fprintln(w, "No queries were run.")
		return
	}
	n := time.Duration(r.completed)
	fmt.Fprintf(w, "Queries: %d\n", r.completed)
	fmt.Fprintf(w, "Average runtime: %s, %s (with path)\n", r.runtime/n, r.runtimeWithPath/n)
	fmt.Fprintf(w, "Average pq pops: %d\n", r.pqPops/r.completed)
	fmt.Fprintf(w, "Average edge relaxations: %d\n", r.edgeRelaxations/r.completed)
	fmt.Fprintf(w, "%v/%v invalid results (source/target).\n", len(r.invalidResults), r.completed)
	fmt.Fprintf(w, "%v/%v invalid path lengths.\n", len(r.invalidLengths), r.completed)
	// equal length paths may differ in their number of hops
	fmt.Fprintf(w, "%v/%v differing hop counts.\n", len(r.invalidHops), r.completed)
}
