package classify

import "math"

// Example is one labeled training pair: a transaction description and the
// category it belongs to.
type Example struct {
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// Model is a multinomial naive Bayes classifier over tf-idf vectors.
// Category order is the order of first appearance in the training set, which
// also breaks posterior ties deterministically.
type Model struct {
	categories    []string
	logPrior      []float64
	logLikelihood [][]float64 // [category][term]
}

// laplaceAlpha is the additive smoothing applied to term counts.
const laplaceAlpha = 0.1

// TrainModel fits a model on the given examples using vectors from vocab.
// The result depends only on the example slice and its order.
func TrainModel(vocab *Vocabulary, examples []Example) *Model {
	m := &Model{}
	catIndex := make(map[string]int)

	termWeight := make([][]float64, 0)
	catCount := make([]float64, 0)

	for _, ex := range examples {
		ci, ok := catIndex[ex.Category]
		if !ok {
			ci = len(m.categories)
			catIndex[ex.Category] = ci
			m.categories = append(m.categories, ex.Category)
			termWeight = append(termWeight, make([]float64, vocab.Size()))
			catCount = append(catCount, 0)
		}
		catCount[ci]++

		vec := vocab.Vectorize(ex.Description)
		for t, w := range vec {
			termWeight[ci][t] += w
		}
	}

	total := float64(len(examples))
	vocabSize := float64(vocab.Size())

	m.logPrior = make([]float64, len(m.categories))
	m.logLikelihood = make([][]float64, len(m.categories))
	for ci := range m.categories {
		m.logPrior[ci] = math.Log(catCount[ci] / total)

		var catTotal float64
		for _, w := range termWeight[ci] {
			catTotal += w
		}
		denom := math.Log(catTotal + laplaceAlpha*vocabSize)

		m.logLikelihood[ci] = make([]float64, vocab.Size())
		for t, w := range termWeight[ci] {
			m.logLikelihood[ci][t] = math.Log(w+laplaceAlpha) - denom
		}
	}
	return m
}

// Categories returns the category labels in insertion order.
func (m *Model) Categories() []string { return m.categories }

// Predict returns the most probable category for vec and its posterior
// probability. Ties keep the earlier category.
func (m *Model) Predict(vec []float64) (string, float64) {
	joint := make([]float64, len(m.categories))
	for ci := range m.categories {
		score := m.logPrior[ci]
		ll := m.logLikelihood[ci]
		for t, w := range vec {
			if w != 0 {
				score += w * ll[t]
			}
		}
		joint[ci] = score
	}

	best := 0
	for ci := 1; ci < len(joint); ci++ {
		if joint[ci] > joint[best] {
			best = ci
		}
	}

	// Posterior via log-sum-exp for numerical stability.
	max := joint[best]
	var sum float64
	for _, s := range joint {
		sum += math.Exp(s - max)
	}
	return m.categories[best], 1 / sum
}
