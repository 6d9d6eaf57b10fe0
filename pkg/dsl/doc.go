/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Turing machines.

It allows developers to define machines using a type-safe, fluent builder pattern
instead of relying on external YAML, JSON or CSV files. This is particularly useful for
generated machines, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	m, err := dsl.New("translator").
		Start("q0").
		Accept("q1").
		From("q0").Read("a").Write("b").Right().Stay().
		From("q0").Read("b").Right().Stay().
		From("q0").Read("blank").Left().Go("q1").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	// The resulting machine can be passed to turing.New(...) or stored.
*/
package dsl
