// Package termline implements interactive line editing over a byte stream,
// e.g. a serial console, for small command shells.
//
// The editor is built from independent pieces:
//
//   - [Decoder] turns raw bytes into logical keys ([Key]), recognising the
//     ESC [ sequences for the arrow keys and delete.
//   - [Buffer] is a fixed capacity line, with a cursor. [Buffer.Apply]
//     performs the edit for one key, returning an [Event].
//   - [History] is a bounded store of accepted lines, with recall in both
//     directions.
//   - [Terminal] ties them together: [Terminal.ReadLine] waits for input,
//     or for a [Signal] requesting that the line be repainted, reacting to
//     each event until a line is accepted.
//
// All storage is allocated up front, and never grows.
//
// # Example
//
//	src := termline.NewReaderSource(ctx, port)
//	t, err := termline.New(src, port,
//		termline.WithPrompt("$ "),
//		termline.WithHistoryConfig(termline.DefaultHistoryConfig()),
//	)
//	if err != nil {
//		return err
//	}
//	for {
//		line, err := t.ReadLine(ctx)
//		if errors.Is(err, termline.ErrEndOfInput) {
//			return nil
//		}
//		var encErr *termline.EncodingError
//		if errors.As(err, &encErr) {
//			continue
//		}
//		if err != nil {
//			return err
//		}
//		run(line)
//	}
//
// # Limitations
//
// Cursor arithmetic is per byte, there is no support for multi-byte
// characters. Only printable ASCII is accepted as input. The byte following
// an ESC that does not start a recognised sequence is lost.
package termline
