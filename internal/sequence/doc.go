// Package sequence produces the prerequisite-valid base order of a learning
// path: a deterministic easiest-first topological sort followed by the
// scaffolding pass that groups objectives by ascending difficulty tier.
package sequence
