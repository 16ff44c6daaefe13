package ensemble

// NodeType distinguishes internal split nodes from leaves.
type NodeType int

const (
	NumericalNode NodeType = iota
	LeafNode
)

// Node is a single node of a regression tree. Internal nodes route samples
// by a numeric threshold; leaves carry the output value.
type Node struct {
	NodeID       int
	ParentID     int
	NodeType     NodeType
	SplitFeature int
	Threshold    float64
	Gain         float64
	LeafValue    float64
	LeftChild    int
	RightChild   int
}

// Tree is one regression tree of the boosted ensemble, stored as a flat
// node array indexed by NodeID. Node 0 is the root.
type Tree struct {
	TreeIndex     int
	Nodes         []Node
	NumLeaves     int
	ShrinkageRate float64
}

// Predict routes the feature vector from the root to a leaf and returns the
// raw leaf value (shrinkage is applied by the caller).
func (t *Tree) Predict(features []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}

	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.NodeType == LeafNode {
			return node.LeafValue
		}
		if features[node.SplitFeature] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
