// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	envNoopLimit  = "CORUN_NOOP_LIMIT"
	envJobWorkers = "CORUN_JOB_WORKERS"
	envLogLevel   = "CORUN_LOG_LEVEL"
)

// Config holds driver configuration loaded from environment variables.
type Config struct {
	// NoopLimit is the runaway bound. Default DefaultNoopLimit.
	NoopLimit int
	// JobWorkers bounds concurrent background jobs. Zero runs every job
	// on its own goroutine.
	JobWorkers int
	// LogLevel is the driver log level. Default info.
	LogLevel logrus.Level
}

// LoadConfig reads configuration from environment variables with
// defaults. Malformed values fall back to the default.
func LoadConfig() Config {
	cfg := Config{
		NoopLimit: DefaultNoopLimit,
		LogLevel:  logrus.InfoLevel,
	}
	if n, err := strconv.Atoi(os.Getenv(envNoopLimit)); err == nil && n > 0 {
		cfg.NoopLimit = n
	}
	if n, err := strconv.Atoi(os.Getenv(envJobWorkers)); err == nil && n >= 0 {
		cfg.JobWorkers = n
	}
	if v := os.Getenv(envLogLevel); v != "" {
		if lvl, err := logrus.ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		}
	}
	return cfg
}

// Options converts the configuration to driver options.
// Driver logs are written as JSON to w.
func (c Config) Options(w io.Writer) []Option {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(c.LogLevel)
	l.SetFormatter(&logrus.JSONFormatter{})

	opts := []Option{
		WithNoopLimit(c.NoopLimit),
		WithLogger(l),
	}
	if c.JobWorkers > 0 {
		opts = append(opts, WithExecutor(NewPool(c.JobWorkers)))
	}
	return opts
}
