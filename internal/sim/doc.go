// Package sim builds a randomized port and mutates it over time.
//
// An Engine owns the random source, the identifier pools and the distributions
// for one simulation. Engine.NewPort constructs the whole tree in one pass:
// Port -> Berths -> (Ship, Radars, Bollards -> Hooks). Each simulator performs
// its initial randomization on construction.
//
// Port.Update cascades down the tree, radars before bollards at every level,
// and only ever changes hook tension and radar distance/change. Names, counts,
// attached lines and hook states are fixed at construction.
//
// Port.Export builds a fresh domain.PortRecord and validates it before handing
// it out.
//
// Nothing in this package is goroutine-safe. A Port and the Engine that built it
// belong to a single goroutine.
package sim
