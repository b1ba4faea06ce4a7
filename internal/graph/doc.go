// Package graph builds the prerequisite dependency graph for a set of
// learning objectives. It indexes objectives into an arena, derives adjacency
// and in-degree from the declared prerequisite ids, and reports structural
// irregularities as findings rather than errors.
package graph
