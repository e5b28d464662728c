// Package bestfirst provides a generic best-first state-space search for puzzle planning.
//
// It exposes two main entry points:
//
//   - Search / SearchWithVisited: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The library is generic over state, action and cost types. Everything about how
// states are represented, how heuristics estimate and how actions are ordered is
// supplied by the caller; the package owns the control loop, the frontier and
// visited bookkeeping, and plan reconstruction.
//
// A state is marked visited when it is first enqueued and is never reconsidered,
// so the returned plan is the first goal reached in expansion order. It is optimal
// only for admissible, consistent heuristics over uniform action costs.
package bestfirst
