// Package strategy evaluates a fixed, ordered set of business rules over a
// freshly analyzed comment and the recent history, producing a prioritized
// list of recommended actions.
package strategy
