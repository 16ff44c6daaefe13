// Package ensemble implements a gradient boosting machine for binary
// classification. Trees are grown leaf-wise on the logistic loss using
// first and second order gradients, with optional balanced class weights.
package ensemble

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/pkg/errors"
)

const (
	defaultNumIterations   = 100
	defaultLearningRate    = 0.1
	defaultNumLeaves       = 31
	defaultMinChildSamples = 20
	defaultLambda          = 1e-3

	minHessian = 1e-16
	leafEps    = 1e-10
)

// GBMClassifier is a gradient boosted tree classifier for binary targets.
type GBMClassifier struct {
	model.BaseEstimator

	// Hyperparameters
	NumIterations   int
	LearningRate    float64
	NumLeaves       int
	MaxDepth        int // -1 means unlimited
	MinChildSamples int
	Lambda          float64 // L2 regularization on leaf values
	MinGainToSplit  float64
	BalancedClass   bool

	// Fitted state
	Trees     []Tree
	InitScore float64
	NFeatures int

	gainImportance  []float64
	splitImportance []float64
}

// GBMOption is a functional option for GBMClassifier.
type GBMOption func(*GBMClassifier)

// NewGBMClassifier creates a classifier with LightGBM-like defaults.
func NewGBMClassifier(opts ...GBMOption) *GBMClassifier {
	gbm := &GBMClassifier{
		NumIterations:   defaultNumIterations,
		LearningRate:    defaultLearningRate,
		NumLeaves:       defaultNumLeaves,
		MaxDepth:        -1,
		MinChildSamples: defaultMinChildSamples,
		Lambda:          defaultLambda,
	}
	for _, opt := range opts {
		opt(gbm)
	}
	return gbm
}

// WithNumIterations sets the number of boosting rounds.
func WithNumIterations(n int) GBMOption {
	return func(g *GBMClassifier) { g.NumIterations = n }
}

// WithLearningRate sets the shrinkage applied to each tree's contribution.
func WithLearningRate(lr float64) GBMOption {
	return func(g *GBMClassifier) { g.LearningRate = lr }
}

// WithNumLeaves caps the number of leaves per tree.
func WithNumLeaves(n int) GBMOption {
	return func(g *GBMClassifier) { g.NumLeaves = n }
}

// WithMaxDepth limits tree depth; -1 leaves depth unlimited.
func WithMaxDepth(d int) GBMOption {
	return func(g *GBMClassifier) { g.MaxDepth = d }
}

// WithMinChildSamples sets the minimum sample count per leaf.
func WithMinChildSamples(n int) GBMOption {
	return func(g *GBMClassifier) { g.MinChildSamples = n }
}

// WithLambda sets the L2 regularization on leaf values.
func WithLambda(lambda float64) GBMOption {
	return func(g *GBMClassifier) { g.Lambda = lambda }
}

// WithGBMBalancedClassWeight reweights samples inversely to class frequency.
func WithGBMBalancedClassWeight() GBMOption {
	return func(g *GBMClassifier) { g.BalancedClass = true }
}

// Fit trains the boosted ensemble on features X and binary labels y (n x 1).
func (g *GBMClassifier) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if yCols != 1 {
		return errors.NewDimensionError("GBMClassifier.Fit", 1, yCols, 1)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("GBMClassifier.Fit", nSamples, yRows, 0)
	}
	if nSamples == 0 {
		return errors.NewModelError("GBMClassifier.Fit", "empty data", errors.ErrEmptyData)
	}

	targets := make([]float64, nSamples)
	positives := 0
	for i := 0; i < nSamples; i++ {
		switch v := y.At(i, 0); v {
		case 1:
			targets[i] = 1
			positives++
		case 0:
		default:
			return errors.NewValueError("GBMClassifier.Fit", "labels must be binary (0 or 1)")
		}
	}
	if positives == 0 || positives == nSamples {
		return errors.NewValueError("GBMClassifier.Fit", "training labels contain a single class")
	}

	weights := make([]float64, nSamples)
	if g.BalancedClass {
		negWeight := float64(nSamples) / (2 * float64(nSamples-positives))
		posWeight := float64(nSamples) / (2 * float64(positives))
		for i, t := range targets {
			if t == 1 {
				weights[i] = posWeight
			} else {
				weights[i] = negWeight
			}
		}
	} else {
		for i := range weights {
			weights[i] = 1
		}
	}

	// Dense copy for column-wise access during split search.
	features := make([][]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		row := make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			row[j] = X.At(i, j)
		}
		features[i] = row
	}

	g.NFeatures = nFeatures
	g.Trees = make([]Tree, 0, g.NumIterations)
	g.gainImportance = make([]float64, nFeatures)
	g.splitImportance = make([]float64, nFeatures)

	// Initialize raw scores at the prior log-odds.
	prior := float64(positives) / float64(nSamples)
	g.InitScore = errors.StabilizeLog(prior) - errors.StabilizeLog(1-prior)

	rawScores := make([]float64, nSamples)
	for i := range rawScores {
		rawScores[i] = g.InitScore
	}

	gradients := make([]float64, nSamples)
	hessians := make([]float64, nSamples)

	for iter := 0; iter < g.NumIterations; iter++ {
		for i := 0; i < nSamples; i++ {
			p := 1.0 / (1.0 + errors.StabilizeExp(-rawScores[i]))
			gradients[i] = (p - targets[i]) * weights[i]
			hessians[i] = math.Max(p*(1-p)*weights[i], minHessian)
		}

		tree := g.buildTree(iter, features, gradients, hessians)
		g.Trees = append(g.Trees, tree)

		for i := 0; i < nSamples; i++ {
			rawScores[i] += g.LearningRate * tree.Predict(features[i])
		}
	}

	g.SetFitted()
	return nil
}

// Predict returns hard labels, thresholding the positive probability at 0.5.
func (g *GBMClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := g.PredictProba(X)
	if err != nil {
		return nil, err
	}

	rows, _ := probas.Dims()
	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if probas.At(i, 1) >= 0.5 {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns class probabilities as an n x 2 matrix.
func (g *GBMClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GBMClassifier", "PredictProba")
	}

	rows, cols := X.Dims()
	if cols != g.NFeatures {
		return nil, errors.NewDimensionError("GBMClassifier.PredictProba", g.NFeatures, cols, 1)
	}

	probas := mat.NewDense(rows, 2, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = X.At(i, j)
		}

		raw := g.InitScore
		for t := range g.Trees {
			raw += g.LearningRate * g.Trees[t].Predict(row)
		}

		p := 1.0 / (1.0 + errors.StabilizeExp(-raw))
		probas.Set(i, 0, 1-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

// FeatureImportances returns per-feature importance normalized to sum to 1.
// importanceType is "gain" (total split gain) or "split" (split count).
func (g *GBMClassifier) FeatureImportances(importanceType string) ([]float64, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GBMClassifier", "FeatureImportances")
	}

	var raw []float64
	switch importanceType {
	case "gain":
		raw = g.gainImportance
	case "split":
		raw = g.splitImportance
	default:
		return nil, errors.NewValueError("GBMClassifier.FeatureImportances",
			"importance type must be \"gain\" or \"split\"")
	}

	if raw == nil {
		// Rebuild from the trees after gob decoding.
		gain, split := importanceFromTrees(g.Trees, g.NFeatures)
		g.gainImportance, g.splitImportance = gain, split
		if importanceType == "gain" {
			raw = gain
		} else {
			raw = split
		}
	}

	total := 0.0
	for _, v := range raw {
		total += v
	}

	importances := make([]float64, len(raw))
	for i, v := range raw {
		importances[i] = errors.SafeDivide(v, total)
	}
	return importances, nil
}

// importanceFromTrees accumulates gain and split counts over all tree nodes.
func importanceFromTrees(trees []Tree, nFeatures int) (gain, split []float64) {
	gain = make([]float64, nFeatures)
	split = make([]float64, nFeatures)
	for t := range trees {
		for _, node := range trees[t].Nodes {
			if node.NodeType != LeafNode {
				gain[node.SplitFeature] += node.Gain
				split[node.SplitFeature]++
			}
		}
	}
	return gain, split
}

// splitCandidate is the best split found for a node, if any.
type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// buildTree grows one tree leaf-wise until the leaf budget, depth limit or
// minimum gain stops it.
func (g *GBMClassifier) buildTree(treeIndex int, features [][]float64, gradients, hessians []float64) Tree {
	tree := Tree{
		TreeIndex:     treeIndex,
		ShrinkageRate: g.LearningRate,
	}

	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}

	// planned counts the leaves the finished tree will have if no open
	// subtree splits again, so the budget also covers pending siblings.
	planned := 1
	g.buildNode(&tree, features, gradients, hessians, indices, -1, 0, &planned)
	return tree
}

// buildNode recursively grows the subtree for the given sample indices and
// returns the new node's id.
func (g *GBMClassifier) buildNode(tree *Tree, features [][]float64, gradients, hessians []float64, indices []int, parentID, depth int, planned *int) int {
	nodeID := len(tree.Nodes)

	sumGrad, sumHess := 0.0, 0.0
	for _, idx := range indices {
		sumGrad += gradients[idx]
		sumHess += hessians[idx]
	}

	makeLeaf := len(indices) < 2*g.MinChildSamples ||
		*planned >= g.NumLeaves ||
		(g.MaxDepth >= 0 && depth >= g.MaxDepth)

	var best *splitCandidate
	if !makeLeaf {
		best = g.findBestSplit(features, gradients, hessians, indices, sumGrad, sumHess)
		if best == nil || best.gain <= g.MinGainToSplit {
			makeLeaf = true
		}
	}

	if makeLeaf {
		tree.Nodes = append(tree.Nodes, Node{
			NodeID:    nodeID,
			ParentID:  parentID,
			NodeType:  LeafNode,
			LeafValue: -sumGrad / (sumHess + g.Lambda + leafEps),
		})
		tree.NumLeaves++
		return nodeID
	}

	tree.Nodes = append(tree.Nodes, Node{
		NodeID:       nodeID,
		ParentID:     parentID,
		NodeType:     NumericalNode,
		SplitFeature: best.feature,
		Threshold:    best.threshold,
		Gain:         best.gain,
	})

	g.gainImportance[best.feature] += best.gain
	g.splitImportance[best.feature]++

	// Splitting turns one planned leaf into two.
	*planned++

	leftID := g.buildNode(tree, features, gradients, hessians, best.left, nodeID, depth+1, planned)
	rightID := g.buildNode(tree, features, gradients, hessians, best.right, nodeID, depth+1, planned)

	tree.Nodes[nodeID].LeftChild = leftID
	tree.Nodes[nodeID].RightChild = rightID
	return nodeID
}

// findBestSplit scans every feature for the threshold maximizing the
// regularized gain. Returns nil when no valid split exists.
func (g *GBMClassifier) findBestSplit(features [][]float64, gradients, hessians []float64, indices []int, sumGrad, sumHess float64) *splitCandidate {
	var best *splitCandidate
	nFeatures := len(features[indices[0]])

	sorted := make([]int, len(indices))
	for feature := 0; feature < nFeatures; feature++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return features[sorted[a]][feature] < features[sorted[b]][feature]
		})

		leftGrad, leftHess := 0.0, 0.0
		for i := 0; i < len(sorted)-1; i++ {
			idx := sorted[i]
			leftGrad += gradients[idx]
			leftHess += hessians[idx]

			// Cannot split inside a run of equal feature values.
			if features[idx][feature] == features[sorted[i+1]][feature] {
				continue
			}

			nLeft := i + 1
			nRight := len(sorted) - nLeft
			if nLeft < g.MinChildSamples || nRight < g.MinChildSamples {
				continue
			}

			rightGrad := sumGrad - leftGrad
			rightHess := sumHess - leftHess
			gain := splitGain(leftGrad, leftHess, rightGrad, rightHess, g.Lambda)
			if best != nil && gain <= best.gain {
				continue
			}

			threshold := (features[idx][feature] + features[sorted[i+1]][feature]) / 2
			left := make([]int, nLeft)
			right := make([]int, nRight)
			copy(left, sorted[:nLeft])
			copy(right, sorted[nLeft:])

			best = &splitCandidate{
				feature:   feature,
				threshold: threshold,
				gain:      gain,
				left:      left,
				right:     right,
			}
		}
	}

	return best
}

// splitGain is the reduction in the regularized logistic loss from splitting
// a node with gradient/hessian totals (GL+GR, HL+HR) into its two children.
func splitGain(gl, hl, gr, hr, lambda float64) float64 {
	return 0.5 * (gl*gl/(hl+lambda) + gr*gr/(hr+lambda) -
		(gl+gr)*(gl+gr)/(hl+hr+lambda))
}
