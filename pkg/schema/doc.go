// Package schema turns raw transition entries into a validated transition table.
//
// Loaders (interactive prompts, CSV files, definition files, the HTTP API)
// all produce RawTransition values: five untyped strings, exactly as a user
// typed them. ValidateEntry checks one entry against the machine's track
// count and returns the typed domain.Transition:
//
//	raw := schema.RawTransition{From: "q0", Read: "a", To: "q1", Write: "b", Move: "R"}
//	tr, err := schema.ValidateEntry(raw, 1)
//
// BuildTable validates a whole sequence with per-entry recovery: invalid
// entries are skipped and reported as *EntryError values, valid entries keep
// their relative order.
//
//	table, errs := schema.BuildTable(raws, tracks)
//	for _, err := range errs {
//	    // report and continue
//	}
//
// How severe an entry error is remains the loader's decision: the interactive
// loader reports and continues, the CSV loader aborts the whole file.
package schema
