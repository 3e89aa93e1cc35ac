package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var ErrInvalidFmi = errors.New("invalid fmi graph")

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

func WriteFmi(g Graph, w io.Writer) error {
	writer := bufio.NewWriter(w)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		return err
	}
	return writer.Flush()
}

func WriteFmiFile(g Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating fmi file: %w", err)
	}
	defer file.Close()

	if err := WriteFmi(g, file); err != nil {
		return fmt.Errorf("writing fmi file: %w", err)
	}
	return nil
}

func ReadFmi(r io.Reader) (*AdjacencyListGraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	numNodes := 0
	numParsedNodes := 0

	alg := NewAdjacencyListGraph()
	id2index := make(map[int]NodeId)

	parseState := PARSE_NODE_COUNT
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node count: %v", ErrInvalidFmi, lineNumber, err)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			if _, err := strconv.Atoi(line); err != nil {
				return nil, fmt.Errorf("%w: line %d: arc count: %v", ErrInvalidFmi, lineNumber, err)
			}
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			var id int
			var lat, lon float64
			if _, err := fmt.Sscanf(line, "%d %f %f", &id, &lat, &lon); err != nil {
				return nil, fmt.Errorf("%w: line %d: node: %v", ErrInvalidFmi, lineNumber, err)
			}
			if _, exists := id2index[id]; exists {
				return nil, fmt.Errorf("%w: line %d: duplicate node %v", ErrInvalidFmi, lineNumber, id)
			}
			id2index[id] = alg.AddNode(orb.Point{lon, lat})
			numParsedNodes++
			if numParsedNodes == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			var from, to int
			var cost float64
			if _, err := fmt.Sscanf(line, "%d %d %f", &from, &to, &cost); err != nil {
				return nil, fmt.Errorf("%w: line %d: arc: %v", ErrInvalidFmi, lineNumber, err)
			}
			fromIndex, okFrom := id2index[from]
			toIndex, okTo := id2index[to]
			if !okFrom || !okTo {
				return nil, fmt.Errorf("%w: line %d: arc %v -> %v references unknown node", ErrInvalidFmi, lineNumber, from, to)
			}
			// duplicates are collapsed, so the arc count of the header is not checked
			if _, err := alg.AddArc(fromIndex, toIndex, cost); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFmi, lineNumber, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if alg.NodeCount() != numNodes {
		return nil, fmt.Errorf("%w: expected %d nodes, parsed %d", ErrInvalidFmi, numNodes, alg.NodeCount())
	}

	return alg, nil
}

func NewAdjacencyListFromFmiString(fmi string) (*AdjacencyListGraph, error) {
	return ReadFmi(strings.NewReader(fmi))
}

func NewAdjacencyListFromFmiFile(filename string) (*AdjacencyListGraph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening fmi file: %w", err)
	}
	defer file.Close()
	return ReadFmi(file)
}

func NewAdjacencyArrayFromFmiString(fmi string) (*AdjacencyArrayGraph, error) {
	alg, err := NewAdjacencyListFromFmiString(fmi)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), nil
}

func NewAdjacencyArrayFromFmiFile(filename string) (*AdjacencyArrayGraph, error) {
	alg, err := NewAdjacencyListFromFmiFile(filename)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), nil
}
