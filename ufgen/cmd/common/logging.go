package common

import (
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ufbench/ufgen/common/logging"
)

const (
	cfgLogFile  = "log.file"
	cfgLogFmt   = "log.format"
	cfgLogLevel = "log.level"
)

// LoggingFlags has the logging flags, to be registered as persistent
// flags on the root command.
var LoggingFlags = flag.NewFlagSet("", flag.ContinueOnError)

func initLogging() error {
	var logLevel logging.Level
	moduleLevels := map[string]logging.Level{}
	if err := logLevel.Set(viper.GetString(cfgLogLevel)); err != nil {
		// The log level can also be a per-module map in the config
		// file, with the fallback level under the "default" key.
		if errDefault := logLevel.Set(viper.GetString(cfgLogLevel + ".default")); errDefault != nil {
			return errDefault
		}

		for k, v := range viper.GetStringMapString(cfgLogLevel) {
			if k == "default" {
				continue
			}

			var lvl logging.Level
			if err = lvl.Set(v); err != nil {
				return err
			}
			moduleLevels[k] = lvl
		}
	}

	var logFmt logging.Format
	if err := logFmt.Set(viper.GetString(cfgLogFmt)); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if logFile := viper.GetString(cfgLogFile); logFile != "" {
		var err error
		if w, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err != nil {
			return err
		}
	}

	return logging.Initialize(w, logFmt, logLevel, moduleLevels)
}

func init() {
	logFmt := logging.FmtLogfmt
	logLevel := logging.LevelInfo

	LoggingFlags.String(cfgLogFile, "", "log file")
	LoggingFlags.Var(&logFmt, cfgLogFmt, "log format")
	LoggingFlags.Var(&logLevel, cfgLogLevel, "log level")

	_ = viper.BindPFlags(LoggingFlags)
}
