package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slbstore/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum uint8

const (
	TypeApp TypeEnum = iota
	TypeStore
	TypePersist
)

func (t TypeEnum) String() string {
	switch t {
	case TypeStore:
		return "store"
	case TypePersist:
		return "persist"
	default:
		return "app"
	}
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	path := filepath.Join(conf.Logger.Dir, "slbstore.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	if conf.Debug {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return &LogProvider{
		logger: zerolog.New(out).Level(level).With().Timestamp().Logger(),
		file:   file,
	}, nil
}

func (p *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	p.logger.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	p.logger.Info().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	p.logger.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	p.logger.Error().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	p.logger.Fatal().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Close() {
	_ = p.file.Close()
}
