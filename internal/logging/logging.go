package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/playground/config"
)

// New builds a logger from cfg writing to out (stderr when nil). Empty
// fields fall back to info level and text output.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = lvl
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
