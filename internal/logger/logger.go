package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Name es el prefijo de todas las líneas de diagnóstico.
const Name = "dupr"

// Options controla el destino y el nivel de los diagnósticos.
type Options struct {
	Verbose int       // 0 = warn, 1 = info, 2+ = debug
	File    string    // archivo de log opcional (rotado)
	Out     io.Writer // por defecto os.Stderr
}

// Init configura el logger global según opts.
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	if opts.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5,
			MaxAge:     14,
			MaxBackups: 5,
		})
	}
	logrus.SetOutput(out)

	switch {
	case opts.Verbose >= 2:
		logrus.SetLevel(logrus.DebugLevel)
	case opts.Verbose == 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}

	if opts.Verbose > 0 {
		logrus.SetFormatter(&prefixed.TextFormatter{
			DisableColors:   opts.File != "",
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceFormatting: true,
		})
		return
	}
	logrus.SetFormatter(&PlainFormatter{})
}

// GetLogger devuelve una entrada con el prefijo del componente.
func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithField("prefix", prefix)
}

// PlainFormatter escribe "dupr: <mensaje>[: <error>]" sin timestamp ni nivel,
// para que stderr se lea como el de una herramienta Unix.
type PlainFormatter struct{}

func (f *PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(Name)
	b.WriteString(": ")
	b.WriteString(entry.Message)
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		fmt.Fprintf(&b, ": %v", err)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
