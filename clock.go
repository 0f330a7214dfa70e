package main

import "github.com/jonboulle/clockwork"

// clock stamps observations and ages; tests swap it for a fake
var clock = clockwork.NewRealClock()

// SetClock replaces the time source. Pass nil to go back to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
