// Package objective defines the value types the sequencing engine consumes:
// learning objectives with their Bloom level and difficulty tier, and the
// learner profile used for personalization.
package objective
