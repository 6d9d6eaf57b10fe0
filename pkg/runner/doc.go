/*
Package runner implements the interactive session of the simulator.

It is the bridge between the engine and a person at a terminal: the machine is
built from line-based prompts (track count, transitions, key states) and then
run on as many inputs as requested, each on a fresh tape, with every
configuration rendered as it happens.

# Key Components

  - Runner: builds the machine and drives the "Parse another string?" loop.
  - Prompter: reads sanitized answers from any io.Reader.
  - SnapshotRenderer / VerdictRenderer: pluggable output (plain text by default,
    colored tables from the CLI).

# Usage

	r := runner.NewRunner(
		runner.WithIO(os.Stdin, os.Stdout),
		runner.WithMaxSteps(10_000),
	)

	if err := r.Interactive(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
