package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(envConfig{LogLevel: "error", LogFormat: "text"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := execute(t, "validate", "testdata/daily.yaml")
	require.NoError(t, err)
	assert.Equal(t, "machine is valid: 5 states, 5 events, initial asleep\n", out)
}

func TestValidateCmdRejectsBadMachine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial: nowhere\nstates: [a]\n"), 0o600))

	_, err := execute(t, "validate", path)
	assert.ErrorContains(t, err, "nowhere is not a registered state")
}

func TestGraphCmd(t *testing.T) {
	out, err := execute(t, "graph", "testdata/daily.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "stateDiagram-v2\n")
	assert.Contains(t, out, "tired --> asleep: nap")
}

func TestRunCmd(t *testing.T) {
	out, err := execute(t, "run", "testdata/daily.yaml", "wakeup", "work", "eat")
	require.NoError(t, err)
	assert.Equal(t, "wakeup: asleep -> hungry\nwork: no transition from hungry\neat: hungry -> satisfied\ncurrent: satisfied\n", out)
}

func TestRunCmdStrict(t *testing.T) {
	_, err := execute(t, "run", "--strict", "testdata/daily.yaml", "eat", "wakeup")
	assert.ErrorIs(t, err, errMissedEvent)
}

func TestRunCmdWildcardFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panic.yaml")
	doc := "initial: calm\ntransitions:\n  - {name: panic, to: alarmed}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := execute(t, "run", path, "panic")
	require.NoError(t, err)
	assert.Contains(t, out, "current: calm")

	out, err = execute(t, "run", "--wildcard", "any", path, "panic")
	require.NoError(t, err)
	assert.Contains(t, out, "panic: calm -> alarmed")

	_, err = execute(t, "run", "--wildcard", "sometimes", path, "panic")
	assert.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("FSMCTL_LOG_LEVEL", "debug")
	cfg, err := loadEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}
