// Package modelselection provides the seeded train/test split used by the
// model comparison. The split is stratified by the binary label so both
// partitions preserve the dataset's label ratio within rounding.
package modelselection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/pkg/errors"
)

// TrainTestSplitter produces a single deterministic train/test partition.
type TrainTestSplitter struct {
	TestSize float64
	Seed     uint64
	Stratify bool
}

// NewTrainTestSplitter creates a splitter with the given test fraction and seed.
func NewTrainTestSplitter(testSize float64, seed uint64, stratify bool) *TrainTestSplitter {
	return &TrainTestSplitter{TestSize: testSize, Seed: seed, Stratify: stratify}
}

// Split partitions row indices [0, n) by the labels in y (n x 1 matrix).
// The same seed always yields the same partition.
func (s *TrainTestSplitter) Split(y mat.Matrix) (trainIdx, testIdx []int, err error) {
	if s.TestSize <= 0 || s.TestSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", s.TestSize)
	}

	n, cols := y.Dims()
	if n == 0 {
		return nil, nil, errors.NewModelError("TrainTestSplitter.Split", "empty labels", errors.ErrEmptyData)
	}
	if cols != 1 {
		return nil, nil, errors.NewDimensionError("TrainTestSplitter.Split", 1, cols, 1)
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))

	if !s.Stratify {
		indices := shuffledRange(n, rng)
		nTest := int(math.Round(s.TestSize * float64(n)))
		return indices[nTest:], indices[:nTest], nil
	}

	// Group indices by label value, preserving row order within each stratum.
	strata := make(map[float64][]int)
	var labels []float64
	for i := 0; i < n; i++ {
		label := y.At(i, 0)
		if _, seen := strata[label]; !seen {
			labels = append(labels, label)
		}
		strata[label] = append(strata[label], i)
	}

	// Sample each stratum independently so the label ratio carries over to
	// both partitions within rounding.
	for _, label := range labels {
		stratum := strata[label]
		rng.Shuffle(len(stratum), func(i, j int) {
			stratum[i], stratum[j] = stratum[j], stratum[i]
		})

		nTest := int(math.Round(s.TestSize * float64(len(stratum))))
		testIdx = append(testIdx, stratum[:nTest]...)
		trainIdx = append(trainIdx, stratum[nTest:]...)
	}

	// Interleave the strata so neither partition is ordered by label.
	rng.Shuffle(len(trainIdx), func(i, j int) {
		trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
	})
	rng.Shuffle(len(testIdx), func(i, j int) {
		testIdx[i], testIdx[j] = testIdx[j], testIdx[i]
	})

	return trainIdx, testIdx, nil
}

func shuffledRange(n int, rng *rand.Rand) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}
