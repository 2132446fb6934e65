package classify

import "math"

// Vocabulary maps terms to vector indices and carries the document
// frequencies needed for tf-idf weighting. It is built once per training run
// and never mutated afterwards, so Vectorize is idempotent for a given
// snapshot.
type Vocabulary struct {
	index    map[string]int
	terms    []string
	docFreq  []int
	docCount int
}

// BuildVocabulary scans the training descriptions in order and assigns each
// new term the next index. Iterating the input in slice order keeps the
// term numbering deterministic across runs.
func BuildVocabulary(docs []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, doc := range docs {
		v.docCount++
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			i, ok := v.index[tok]
			if !ok {
				i = len(v.terms)
				v.index[tok] = i
				v.terms = append(v.terms, tok)
				v.docFreq = append(v.docFreq, 0)
			}
			if !seen[tok] {
				v.docFreq[i]++
				seen[tok] = true
			}
		}
	}
	return v
}

// Size returns the number of distinct terms.
func (v *Vocabulary) Size() int { return len(v.terms) }

// Vectorize converts text into an L2-normalized tf-idf vector. Terms outside
// the vocabulary contribute zero weight.
func (v *Vocabulary) Vectorize(text string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, tok := range Tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		if vec[i] == 0 {
			continue
		}
		vec[i] *= v.idf(i)
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// idf uses smoothed inverse document frequency so terms seen in every
// document still carry a small positive weight.
func (v *Vocabulary) idf(term int) float64 {
	return math.Log(float64(1+v.docCount)/float64(1+v.docFreq[term])) + 1
}
