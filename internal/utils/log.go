package utils

import (
	"os"
	"path/filepath"

	"github.com/powerman/structlog"
)

// InitLog configures the process wide structured logger
func InitLog(production bool) {
	level := structlog.DBG
	if production {
		level = structlog.INF
	}

	structlog.DefaultLogger.
		SetLogLevel(level).
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(structlog.KeyStack, structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		})
}
