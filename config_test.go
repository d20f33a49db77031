// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/corun"
	"code.hybscloud.com/kont"
	"github.com/sirupsen/logrus"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CORUN_NOOP_LIMIT", "")
	t.Setenv("CORUN_JOB_WORKERS", "")
	t.Setenv("CORUN_LOG_LEVEL", "")

	cfg := corun.LoadConfig()
	if cfg.NoopLimit != corun.DefaultNoopLimit {
		t.Errorf("NoopLimit = %d, want %d", cfg.NoopLimit, corun.DefaultNoopLimit)
	}
	if cfg.JobWorkers != 0 {
		t.Errorf("JobWorkers = %d, want 0", cfg.JobWorkers)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CORUN_NOOP_LIMIT", "16")
	t.Setenv("CORUN_JOB_WORKERS", "4")
	t.Setenv("CORUN_LOG_LEVEL", "debug")

	cfg := corun.LoadConfig()
	if cfg.NoopLimit != 16 {
		t.Errorf("NoopLimit = %d, want 16", cfg.NoopLimit)
	}
	if cfg.JobWorkers != 4 {
		t.Errorf("JobWorkers = %d, want 4", cfg.JobWorkers)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigInvalidFallsBack(t *testing.T) {
	t.Setenv("CORUN_NOOP_LIMIT", "-3")
	t.Setenv("CORUN_JOB_WORKERS", "many")
	t.Setenv("CORUN_LOG_LEVEL", "chatty")

	cfg := corun.LoadConfig()
	if cfg.NoopLimit != corun.DefaultNoopLimit {
		t.Errorf("NoopLimit = %d, want default", cfg.NoopLimit)
	}
	if cfg.JobWorkers != 0 {
		t.Errorf("JobWorkers = %d, want 0", cfg.JobWorkers)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := corun.Config{NoopLimit: 2, LogLevel: logrus.DebugLevel}
	var buf bytes.Buffer
	d := corun.NewDriver[*world](cfg.Options(&buf)...)
	if err := d.Register("n", corun.FromEff[*world](noopChain(3))); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Step("n", &world{}); !errors.Is(err, corun.ErrRunaway) {
		t.Fatalf("got %v, want ErrRunaway from the configured limit", err)
	}

	var msgs []string
	for line := range strings.Lines(buf.String()) {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line %q: %v", line, err)
		}
		if entry["id"] != "n" {
			t.Errorf("entry without id: %v", entry)
		}
		msgs = append(msgs, entry["msg"].(string))
	}
	if len(msgs) != 2 || msgs[0] != "instance started" || msgs[1] != "instance faulted" {
		t.Fatalf("messages got %q", msgs)
	}
}

func TestConfigLogLevelFilters(t *testing.T) {
	cfg := corun.Config{NoopLimit: corun.DefaultNoopLimit, LogLevel: logrus.WarnLevel}
	var buf bytes.Buffer
	d := corun.NewDriver[*world](cfg.Options(&buf)...)
	if err := d.Register("p", corun.FromEff[*world](func() kont.Eff[struct{}] {
		return corun.NextFrameThen(corun.Done())
	})); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if _, err := d.Step("p", &world{}); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("debug events logged at warn level: %s", buf.String())
	}
}

func TestConfigJobWorkers(t *testing.T) {
	skipRace(t)
	cfg := corun.Config{NoopLimit: corun.DefaultNoopLimit, JobWorkers: 1, LogLevel: logrus.InfoLevel}
	var buf bytes.Buffer
	d := corun.NewDriver[*world](cfg.Options(&buf)...)
	if err := d.Register("j", corun.FromEff[*world](func() kont.Eff[struct{}] {
		return corun.SpawnBind(func() (int, error) { return 5, nil }, report[int])
	})); err != nil {
		t.Fatal(err)
	}
	w := &world{}
	stepUntilDone(t, d, "j", w, 5000)
	assertLog(t, w, "5")
}
