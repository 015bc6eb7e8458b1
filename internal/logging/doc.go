// Package logger provides leveled output for gitops-secrets commands.
//
// Verbosity is controlled by the --verbose and --debug flags:
//
//	Logger.Infof()           // --verbose or --debug
//	Logger.Warnf()           // --verbose or --debug
//	Logger.Debugf()          // --debug only
//	Logger.Errorf()          // --debug only
//	Logger.WarnfAlways()     // always
//	Logger.ErrorfAndReturn() // logs with --debug, always returns the error
//
// Secret values are never passed to the logger; only key names, paths and
// envelope parameters.
package logger
