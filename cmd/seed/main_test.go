package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "seed.db"))
	t.Setenv("SESSION_SECRET_KEY", "seed-secret")
}

func TestRun_CreatesManager(t *testing.T) {
	setSQLiteEnv(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := new(bytes.Buffer)

	args := []string{"-user", "boss", "-first", "Big", "-last", "Boss", "-password", "Passw0rd!"}
	err := run(context.Background(), args, stdin, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "User boss is a manager")
}

func TestRun_PromptsForPassword(t *testing.T) {
	setSQLiteEnv(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	stdin := strings.NewReader("Passw0rd!\n")

	args := []string{"-user", "boss", "-first", "Big", "-last", "Boss"}
	err := run(context.Background(), args, stdin, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User boss is a manager")
}

func TestRun_Idempotent(t *testing.T) {
	setSQLiteEnv(t)

	args := []string{"-user", "boss", "-first", "Big", "-last", "Boss", "-password", "Passw0rd!"}

	err := run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.NoError(t, err, "first run should succeed")

	stdout := new(bytes.Buffer)
	err = run(context.Background(), args, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err, "second run should succeed")
	assert.Contains(t, stdout.String(), "already a manager")
}

func TestRun_WeakPassword(t *testing.T) {
	setSQLiteEnv(t)

	args := []string{"-user", "boss", "-first", "Big", "-last", "Boss", "-password", "weak"}
	err := run(context.Background(), args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user")
}

func TestRun_MissingUserFlag(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	err := run(context.Background(), []string{"-password", "Passw0rd!"}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, stdout.String(), "Usage: seed")
}
