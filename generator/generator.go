// Package generator synthesizes the labeled sales-lead dataset. Features are
// sampled independently from fixed marginal distributions; the conversion
// label is drawn from a per-lead probability built by an additive effects
// model over the sampled features.
package generator

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/growthml/leadconv/dataset"
	"github.com/growthml/leadconv/pkg/errors"
	"github.com/growthml/leadconv/pkg/log"
)

// Generation constants. These are part of the dataset's statistical contract
// and are not runtime-configurable.
const (
	// DefaultNumLeads is the record count produced when none is given.
	DefaultNumLeads = 10000

	// BaseConversionRate is the probability every lead starts from before
	// feature effects are applied.
	BaseConversionRate = 0.10

	// ProbabilityFloor and ProbabilityCeil bound the conversion probability
	// after noise injection, keeping it a valid Bernoulli parameter.
	ProbabilityFloor = 0.01
	ProbabilityCeil  = 0.99

	// noiseStdDev is the standard deviation of the Gaussian noise added to
	// the accumulated probability before clipping.
	noiseStdDev = 0.1

	// Named effect weights, applied in fixed order.
	dealValueWeight   = 0.20 // deal value relative to batch maximum
	ratingWeight      = 0.10 // rating relative to the 5.0 scale maximum
	reviewWeight      = 0.05 // review count relative to batch maximum
	documentsWeight   = 0.25 // verified documents relative to the 6-document maximum
	restaurantBonus   = 0.05 // additive bonus for the Restaurant business type
	pipelineWeight    = 0.05 // sweet-spot deviation penalty weight
	pipelineSweetSpot = 45.0 // days; deviation in either direction is penalized
	ratingScaleMax    = 5.0
	documentsScaleMax = 6.0
)

// Feature marginal parameters.
const (
	ratingMin, ratingMax   = 3.0, 5.0
	reviewsMin, reviewsMax = 10, 1000
	dealValueMu            = 8.5
	dealValueSigma         = 0.8
	pipelineMin, pipelineMax = 1, 90
	documentsMin, documentsMax = 0, 7
	contactsMin, contactsMax = 1, 5
)

var (
	businessTypeWeights = []float64{0.5, 0.3, 0.2}
	priorityWeights     = []float64{0.3, 0.5, 0.2}

	// priorityEffects maps the ordered priority label to its additive effect.
	priorityEffects = map[string]float64{
		dataset.PriorityLow:    -0.05,
		dataset.PriorityMedium: 0.05,
		dataset.PriorityHigh:   0.15,
	}
)

// Generator produces synthetic lead batches from a single explicit random
// stream. Two generators built with the same seed produce identical batches.
type Generator struct {
	rng    *rand.Rand
	logger log.Logger
}

// New creates a Generator seeded with the given value.
func New(seed uint64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed)),
		logger: log.GetLoggerWithName("generator"),
	}
}

// Generate samples n leads, computes each lead's conversion probability, and
// draws the converted label as a Bernoulli trial against it. The stream is
// consumed feature column by feature column, then noise, then label draws.
func (g *Generator) Generate(n int) (*dataset.Table, error) {
	start := time.Now()

	leads, err := g.SampleLeads(n)
	if err != nil {
		return nil, err
	}

	probs := g.ConversionProbabilities(leads)
	for i := range leads {
		if g.rng.Float64() < probs[i] {
			leads[i].Converted = 1
		}
	}

	table := dataset.NewTable(leads)
	g.logger.Info("dataset generated",
		log.OperationKey, "generate",
		log.SamplesKey, table.Len(),
		log.FeaturesKey, len(dataset.Columns)-1,
		log.ConversionRateKey, table.ConversionRate(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return table, nil
}

// SampleLeads draws n unlabeled leads from the fixed marginal distributions.
// Each feature column is sampled as one contiguous block of the stream.
func (g *Generator) SampleLeads(n int) ([]dataset.Lead, error) {
	if n <= 0 {
		return nil, errors.NewValueError("Generator.SampleLeads", "record count must be positive")
	}

	leads := make([]dataset.Lead, n)

	for i := range leads {
		leads[i].BusinessType = g.weightedChoice(dataset.BusinessTypes, businessTypeWeights)
	}

	rating := distuv.Uniform{Min: ratingMin, Max: ratingMax, Src: g.rng}
	for i := range leads {
		leads[i].Rating = math.Round(rating.Rand()*10) / 10
	}

	for i := range leads {
		leads[i].UserRatingsTotal = reviewsMin + g.rng.IntN(reviewsMax-reviewsMin)
	}

	dealValue := distuv.LogNormal{Mu: dealValueMu, Sigma: dealValueSigma, Src: g.rng}
	for i := range leads {
		leads[i].DealValue = math.Round(dealValue.Rand())
	}

	for i := range leads {
		leads[i].Priority = g.weightedChoice(dataset.PriorityLevels, priorityWeights)
	}

	for i := range leads {
		leads[i].TimeInPipeline = pipelineMin + g.rng.IntN(pipelineMax-pipelineMin)
	}

	for i := range leads {
		leads[i].DocumentsVerified = documentsMin + g.rng.IntN(documentsMax-documentsMin)
	}

	for i := range leads {
		leads[i].ContactsCount = contactsMin + g.rng.IntN(contactsMax-contactsMin)
	}

	return leads, nil
}

// ConversionProbabilities applies the additive effects model to the batch,
// injects Gaussian noise, and clips each value into
// [ProbabilityFloor, ProbabilityCeil]. Noise is added before clipping; the
// ordering is part of the dataset's distribution and must not change.
func (g *Generator) ConversionProbabilities(leads []dataset.Lead) []float64 {
	probs := BaseProbabilities(leads)

	noise := distuv.Normal{Mu: 0, Sigma: noiseStdDev, Src: g.rng}
	for i := range probs {
		probs[i] = errors.ClipValue(probs[i]+noise.Rand(), ProbabilityFloor, ProbabilityCeil)
	}
	return probs
}

// BaseProbabilities computes the deterministic part of the conversion
// probability: the base rate plus every named feature effect, in fixed
// order. Deal value and review count are normalized by the batch maximum,
// so the result is only defined over a complete batch.
func BaseProbabilities(leads []dataset.Lead) []float64 {
	probs := make([]float64, len(leads))
	if len(leads) == 0 {
		return probs
	}

	maxDeal := leads[0].DealValue
	maxReviews := float64(leads[0].UserRatingsTotal)
	for _, lead := range leads[1:] {
		if lead.DealValue > maxDeal {
			maxDeal = lead.DealValue
		}
		if float64(lead.UserRatingsTotal) > maxReviews {
			maxReviews = float64(lead.UserRatingsTotal)
		}
	}

	for i, lead := range leads {
		p := BaseConversionRate

		// Higher deal value increases probability.
		p += errors.SafeDivide(lead.DealValue, maxDeal) * dealValueWeight

		// Higher rating and more reviews increase probability.
		p += lead.Rating / ratingScaleMax * ratingWeight
		p += errors.SafeDivide(float64(lead.UserRatingsTotal), maxReviews) * reviewWeight

		// More verified documents significantly increase probability.
		p += float64(lead.DocumentsVerified) / documentsScaleMax * documentsWeight

		// High priority increases probability, Low decreases it.
		p += priorityEffects[lead.Priority]

		// Restaurants convert slightly more often.
		if lead.BusinessType == dataset.BusinessRestaurant {
			p += restaurantBonus
		}

		// Pipeline time has a sweet spot; deviation on either side is
		// penalized symmetrically.
		p -= math.Abs(float64(lead.TimeInPipeline)-pipelineSweetSpot) / pipelineSweetSpot * pipelineWeight

		probs[i] = p
	}

	return probs
}

// weightedChoice draws one value from values with the given weights.
// Weights must sum to 1.
func (g *Generator) weightedChoice(values []string, weights []float64) string {
	r := g.rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return values[i]
		}
	}
	return values[len(values)-1]
}
