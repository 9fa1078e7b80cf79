package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/app/appcontext"
)

func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var level zerolog.Level
	if conf.DevMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers(conf)...)).
		With().
		Timestamp().
		Logger().
		Level(level)
}

func writers(conf *appconfig.Config) []io.Writer {
	var w []io.Writer

	// the cli prints its results to stdout
	out := os.Stdout
	if conf.AppContext.Env == appcontext.EnvCLI {
		out = os.Stderr
	}

	if conf.LogJsonStdout {
		w = append(w, out)
	} else {
		w = append(w, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		})
	}

	if conf.LogFilePath != "" {
		w = append(w, &lumberjack.Logger{
			Filename:   conf.LogFilePath,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}

	return w
}
