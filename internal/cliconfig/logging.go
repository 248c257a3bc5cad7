package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	LogMaxSizeMB     = 16
	LogRetentionDays = 28
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// NewLogger builds the CLI logger. Records go to a rotating file when
// LogFile is set, otherwise to stderr in console format. The returned
// closer releases the log file.
func NewLogger(cfg Config, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxSize:  LogMaxSizeMB,
			MaxAge:   LogRetentionDays,
		}
		out, closer = lj, lj
	} else {
		out = zerolog.ConsoleWriter{
			Out:        stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(stderr),
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
