// Package engine ties the sequencing stages together. Optimize runs the graph
// builder, topological sequencer, scaffolding pass, load balancer,
// personalization adapter, checkpoint planner and path assembler in order, and
// OptimizeBatch runs independent optimizations in parallel.
package engine
