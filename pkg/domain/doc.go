/*
Package domain contains the core domain models of the Turing machine simulator.

It defines the fundamental entities of a (possibly multi-track) machine: Symbols,
Transitions, the Transition Table, Key States, the Tape and the execution
Snapshot. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol: The composite value of one tape cell, one rune per track.
  - Transition: δ(state, symbol) = (state, symbol, direction).
  - Table: The ordered transition list, looked up with first-match-wins semantics.
  - Machine: Table + KeyStates + track count. Immutable once built.
  - Tape: A growable double-ended sequence of Symbols with a head index.
  - Snapshot: One configuration of a run, handed to renderers and hooks.
*/
package domain
