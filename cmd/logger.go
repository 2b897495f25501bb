package main

import "log"

// logAdapter exposes the info/error log pair to packages that log through
// an Infof/Errorf interface.
type logAdapter struct {
	info *log.Logger
	err  *log.Logger
}

func (l logAdapter) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l logAdapter) Errorf(format string, args ...interface{}) {
	l.err.Printf(format, args...)
}
