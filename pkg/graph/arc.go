package graph

type Arc struct {
	To   NodeId
	Cost float64
}

func MakeArc(to NodeId, cost float64) Arc {
	return Arc{To: to, Cost: cost}
}

func (a Arc) Destination() NodeId {
	return a.To
}
