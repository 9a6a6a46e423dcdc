// Package termtest runs a termline.Terminal in-process, against a simulated
// user, for end-to-end tests of line editing.
//
// A Harness connects the Terminal to a Console, either through a pair of
// pipes (the default) or a pseudo-terminal in raw mode (WithPTY). The
// Console sends keystrokes, by friendly name (see LookupKey), and records
// what the Terminal displays, for assertions using Conditions:
//
//	h, err := termtest.NewHarness(ctx, termtest.WithTerminalOptions(
//		termline.WithHistoryConfig(termline.DefaultHistoryConfig()),
//	))
//	if err != nil {
//		t.Fatal(err)
//	}
//	defer h.Close()
//
//	c := h.Console()
//	snap := c.Snapshot()
//	_ = c.SendLine("status")
//	lines, err := h.AwaitLines(ctx, 1)
//	...
//	_ = c.Send("up")
//	err = c.Expect(ctx, snap, termtest.LineEquals("> status"), "recalled line")
//
// Conditions interpret the output the way a terminal would, for the subset
// of escape sequences the editor emits (see LineEquals).
package termtest
