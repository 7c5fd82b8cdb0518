package main

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

func newLogger(level string, out io.Writer) (*log.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return logger, nil
}

func parseLogLevel(raw string) (log.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return log.InfoLevel, nil
	}

	lvl, err := log.ParseLevel(value)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", raw)
	}
	return lvl, nil
}
