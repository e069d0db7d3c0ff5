package main

import (
	"fmt"
	"log/slog"
)

type logAdapter struct {
	*slog.Logger
}

func (log *logAdapter) Printf(msg string, args ...any) {
	log.Logger.Info(fmt.Sprintf(msg, args...))
}
