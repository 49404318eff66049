package suggest

import (
	"math"
	"strings"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// Feature field weights for a song's feature document. Genre is the strongest
// taste signal, artist next, title and tags weakest.
const (
	titleWeight  = 1
	artistWeight = 2
	genreWeight  = 3
	tagWeight    = 1
)

// termVector is a sparse TF-IDF vector keyed by term.
type termVector map[string]float64

// tokenize splits a field into normalized search terms.
func tokenize(s string) []string {
	return strings.Fields(shared.NormalizeQuery(s))
}

// featureTerms builds the weighted term list for a song. Each field's tokens
// are repeated by the field's weight so term frequency carries the weighting.
func featureTerms(song *models.SongMetadata) []string {
	var terms []string

	appendWeighted := func(tokens []string, weight int) {
		for i := 0; i < weight; i++ {
			terms = append(terms, tokens...)
		}
	}

	appendWeighted(tokenize(song.Title()), titleWeight)
	appendWeighted(tokenize(song.Artist()), artistWeight)
	appendWeighted(tokenize(song.Genre()), genreWeight)
	for _, tag := range song.Tags() {
		appendWeighted(tokenize(tag), tagWeight)
	}

	return terms
}

// vectorizer holds smoothed inverse document frequencies fitted over a corpus.
type vectorizer struct {
	idf map[string]float64
}

// fitVectorizer computes IDF weights from the given term documents using
// add-one smoothing so unseen terms never divide by zero.
func fitVectorizer(docs [][]string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	return &vectorizer{idf: idf}
}

// vectorize maps a term document to its L2-normalized TF-IDF vector.
// Documents with no known terms vectorize to an empty vector.
func (v *vectorizer) vectorize(doc []string) termVector {
	tf := make(map[string]float64, len(doc))
	for _, term := range doc {
		tf[term]++
	}

	vec := make(termVector, len(tf))
	var norm float64
	for term, count := range tf {
		idf, ok := v.idf[term]
		if !ok {
			continue
		}
		w := count * idf
		vec[term] = w
		norm += w * w
	}

	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}

	return vec
}

// meanVector averages a set of vectors into a single profile vector.
// The result is not re-normalized; cosine handles magnitude.
func meanVector(vectors []termVector) termVector {
	if len(vectors) == 0 {
		return termVector{}
	}

	mean := make(termVector)
	for _, vec := range vectors {
		for term, w := range vec {
			mean[term] += w
		}
	}

	n := float64(len(vectors))
	for term := range mean {
		mean[term] /= n
	}

	return mean
}

// cosine returns the cosine similarity of two sparse vectors.
func cosine(a, b termVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, w := range a {
		normA += w * w
	}
	for _, w := range b {
		normB += w * w
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
