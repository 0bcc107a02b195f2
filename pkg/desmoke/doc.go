// Package desmoke reformats streaming test-harness log output into
// readable lines and an optional run report.
//
// Quick start:
//
//	report, err := desmoke.Run(ctx, os.Stdin, os.Stdout,
//	    desmoke.WithSummary())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Failed, "tests failed")
//
// Lines desmoke does not recognize pass through byte for byte, so the
// output is always at least as useful as the input. A Run call processes
// one stream; create a fresh call per stream.
package desmoke
