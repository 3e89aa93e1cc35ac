package osmimport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
)

// importPbf reads the file twice: nodes first, then the ways referencing
// them, so the result does not depend on the block order of the file.
func (ri *RoadImporter) importPbf() error {
	if err := ri.decodePbf(func(v interface{}) {
		if node, ok := v.(*osmpbf.Node); ok {
			ri.addNode(node.ID, node.Lat, node.Lon)
		}
	}); err != nil {
		return fmt.Errorf("collecting nodes: %w", err)
	}

	if err := ri.decodePbf(func(v interface{}) {
		if way, ok := v.(*osmpbf.Way); ok {
			ri.addWay(way.ID, way.Tags, way.NodeIDs)
		}
	}); err != nil {
		return fmt.Errorf("collecting ways: %w", err)
	}
	return nil
}

func (ri *RoadImporter) decodePbf(handle func(v interface{})) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		handle(v)
	}
}
