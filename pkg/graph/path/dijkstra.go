package path

import (
	"container/heap"

	"github.com/natevvv/astar-routing/pkg/graph"
	"github.com/natevvv/astar-routing/pkg/queue"
	"github.com/natevvv/astar-routing/pkg/slice"
)

// Dijkstra is a textbook implementation with decrease-key. It serves as
// reference for the other navigators.
type Dijkstra struct {
	g                  graph.Graph
	dijkstraItems      []*queue.Item[graph.NodeId]
	predecessors       []graph.NodeId
	settled            []bool
	searchSpace        []graph.NodeId
	origin             graph.NodeId
	destination        graph.NodeId
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
}

func NewDijkstra(g graph.Graph) *Dijkstra {
	return &Dijkstra{g: g, origin: -1, destination: -1}
}

func (d *Dijkstra) ComputeShortestPath(origin, destination graph.NodeId) (float64, error) {
	if err := checkNodes(d.g, origin, destination); err != nil {
		return -1, err
	}

	d.dijkstraItems = make([]*queue.Item[graph.NodeId], d.g.NodeCount())
	d.predecessors = make([]graph.NodeId, d.g.NodeCount())
	d.settled = make([]bool, d.g.NodeCount())
	d.searchSpace = make([]graph.NodeId, 0)
	d.origin, d.destination = origin, destination
	originItem := queue.NewQueueItem(origin, 0)
	d.dijkstraItems[origin] = originItem
	d.predecessors[origin] = -1

	pq := make(queue.Queue[graph.NodeId], 0)
	heap.Init(&pq)
	heap.Push(&pq, originItem)

	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	for len(pq) > 0 {
		currentPqItem := heap.Pop(&pq).(*queue.Item[graph.NodeId])
		currentNodeId := currentPqItem.Node
		d.pqPops++
		d.settled[currentNodeId] = true
		d.searchSpace = append(d.searchSpace, currentNodeId)

		if currentNodeId == destination {
			break
		}

		for _, arc := range d.g.GetArcsFrom(currentNodeId) {
			d.relaxationAttempts++
			successor := arc.Destination()
			if d.settled[successor] {
				continue
			}

			newPriority := currentPqItem.Priority + arc.Cost
			if d.dijkstraItems[successor] == nil {
				pqItem := queue.NewQueueItem(successor, newPriority)
				d.dijkstraItems[successor] = pqItem
				heap.Push(&pq, pqItem)
			} else if newPriority < d.dijkstraItems[successor].Priority {
				pq.Update(d.dijkstraItems[successor], newPriority)
			} else {
				continue
			}
			d.predecessors[successor] = currentNodeId
			d.pqUpdates++
			d.relaxedEdges++
		}
	}

	if !d.settled[destination] {
		return -1, nil // by default a non-existing path has length -1
	}
	return d.dijkstraItems[destination].Priority, nil
}

func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0) // by default, a non-existing path is an empty slice
	if d.settled == nil || origin != d.origin || destination != d.destination || !d.settled[destination] {
		return path
	}
	for nodeId := destination; nodeId != -1; nodeId = d.predecessors[nodeId] {
		path = append(path, nodeId)
	}
	slice.ReverseInPlace(path)
	return path
}

func (d *Dijkstra) GetSearchSpace() []graph.NodeId { return d.searchSpace }
func (d *Dijkstra) GetPqPops() int                 { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int              { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int        { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int     { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() graph.Graph          { return d.g }
