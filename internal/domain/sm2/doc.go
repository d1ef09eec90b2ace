// Package sm2 implements the SM-2 spaced-repetition scheduling algorithm.
//
// The scheduler is a pure function over a card's scheduling state: given the
// current (easiness, interval, repetitions) triple, a review outcome, and the
// current instant, it produces the next triple and the next review timestamp.
// It performs no I/O and holds no shared state, so it is safe to call
// concurrently without coordination.
package sm2
