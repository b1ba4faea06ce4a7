// Package cogload estimates cognitive load. Balance inserts synthetic review
// objectives whenever the rolling load of a sequence would exceed the
// configured ceiling; Assess scores a whole path on intrinsic, extraneous and
// germane load and emits threshold-triggered recommendations.
package cogload
