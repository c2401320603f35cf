// Package logger configura zerolog para toda la aplicación: consola
// legible en development, JSON en cualquier otro entorno, y el nombre del
// servicio como campo fijo en cada línea.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string // development -> consola legible; resto -> JSON
	Level   string // trace, debug, info, warn, error
	Service string // campo fijo "service" en cada entrada
}

// New construye el logger de la aplicación y lo instala también como
// logger global de zerolog, para las librerías que loguean por esa vía.
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()

	log.Logger = zl
	return zl
}

func parseLevel(s string) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil && s != "" {
		return lvl
	}
	return zerolog.InfoLevel
}
