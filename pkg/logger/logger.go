package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New создает логгер. В production пишет JSON, иначе читаемый текст.
func New(logLevel, environment string) *logrus.Logger {
	return NewWithOutput(logLevel, environment, os.Stdout)
}

func NewWithOutput(logLevel, environment string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
