/*
Package turing is a simulator for deterministic, multi-track Turing machines.

A machine is a table of transitions over states and symbols, an initial state,
a set of accepting states and a track count. The engine runs the machine on an
unbounded tape until no transition applies, and accepts when the state it
halted in is final.

# Concept

Every tape cell holds one symbol per track. A symbol is written as one
character per track, so "ab" on a two-track machine reads 'a' on the first
track and 'b' on the second. The blank cell is written with the box character
□ repeated once per track.

Lookup is first-match-wins: when the table holds several entries for the same
state and symbol, the earliest one applies.

# Usage

	machine := &domain.Machine{
		Name:   "translator",
		Tracks: 1,
		Table: domain.Table{
			{From: "q0", Read: "a", To: "q0", Write: "b", Move: domain.Right},
			{From: "q0", Read: "b", To: "q0", Write: "b", Move: domain.Right},
			{From: "q0", Read: "□", To: "q1", Write: "□", Move: domain.Left},
		},
		States: domain.KeyStates{Initial: "q0", Final: []string{"q1"}},
	}

	eng, err := turing.New(machine, turing.WithMaxSteps(10_000))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Execute(context.Background(), "aab")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Accepted, res.Output(1)) // true [bbb]

Use Run instead of Execute to observe every configuration (state, tape and
head position) along the way.

# Architecture

  - pkg/domain: pure types (symbols, tape, transitions, machines).
  - pkg/schema: validation of raw, user supplied transition entries.
  - internal/runtime: the interpreter.
  - pkg/adapters: machine stores (memory, file, redis, bolt), CSV import, HTTP and MCP servers.
  - pkg/runner: the interactive console session.
*/
package turing
