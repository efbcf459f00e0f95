package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	CategoryField = "category"
)

const (
	CategoryGraphQL = "graphql"
	CategoryIPFS    = "ipfs"
	CategoryHook    = "hook"
	CategoryDeposit = "deposit"
	CategoryNetwork = "network"
	CategoryRPC     = "rpc"
	CategoryStore   = "store"
)

func WithCategory(category string) func(e *zerolog.Event) {
	return func(e *zerolog.Event) {
		e.Str(CategoryField, category)
	}
}

func WithHookCategory(e *zerolog.Event) *zerolog.Event {
	return e.Str(CategoryField, CategoryHook)
}

func WithDepositCategory(e *zerolog.Event) *zerolog.Event {
	return e.Str(CategoryField, CategoryDeposit)
}

// Init points the global logger at a console writer and sets the level.
// Unknown levels fall back to info.
func Init(level string) {
	zerolog.TimeFieldFormat = time.DateTime
	log.Logger = *StdLogger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// StdLogger is a timestamped console logger on stderr, independent of the
// global one.
func StdLogger() *zerolog.Logger {
	l := zerolog.New(consoleWriter()).With().Timestamp().Logger()
	return &l
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    false,
		TimeFormat: time.DateTime,
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s: ", i)
		},
		FieldsOrder: []string{CategoryField, "query", "cid", "tx"},
	}
}
