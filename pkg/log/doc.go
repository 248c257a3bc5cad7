// Package log provides the logging abstraction used by hostctl components.
//
// The library never logs unless a Logger is injected. Use the zerolog adapter
// for real output:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	h, err := hostctl.New(cfg, hostctl.WithLogger(logger))
//
// or the no-op logger in tests:
//
//	logger := log.NewNoopLogger()
package log
