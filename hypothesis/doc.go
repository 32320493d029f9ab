// Package hypothesis maps normalized symptom queries to coarse explanatory
// hypotheses via a static trigger table. It runs independently of the
// similarity engine and never requires embeddings.
package hypothesis
