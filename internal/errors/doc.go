// Package errors provides coded, operator-facing errors.
//
// Every error raised by the runtime layers carries a code ("E010") that maps
// to a registered message, category and explanation. Codes are stable and
// show up in log lines, so an operator can grep for them.
//
// # Usage
//
//	err := errors.New("E120").Wrap(ioErr).With("path", path)
//	logger.Error("config", "error", err)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E120: Cannot read configuration
//	//
//	//   path: retain.json
//	//
//	//   The configuration file exists but could not be read or parsed.
//	//
//	//   Cause: open retain.json: permission denied
package errors
