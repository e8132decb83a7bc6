// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/sec"
)

func TestHashPassword_PrintsVerifiableHash(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"admin", "hash-password", "s3cret"})

	require.NoError(t, root.Execute())

	hashed := strings.TrimSpace(out.String())
	assert.True(t, sec.CheckPasswordHash("s3cret", hashed))
}

func TestHashPassword_RequiresOneArgument(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"admin", "hash-password"})

	assert.Error(t, root.Execute())
}

func TestMigrate_RejectsNonPostgresDriver(t *testing.T) {
	opts := &RootOptions{loadConfig: func() (*config.Config, error) {
		return &config.Config{StoreDriver: config.DriverMemory}, nil
	}}

	cmd := NewMigrateCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"up"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errNotPostgres)
}

func TestSeed_MemoryDriverHasNoAccounts(t *testing.T) {
	opts := &RootOptions{loadConfig: func() (*config.Config, error) {
		return &config.Config{StoreDriver: config.DriverMemory, AdminUsername: "admin"}, nil
	}}

	cmd := NewAdminCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed", "--password", "pw"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keeps no accounts")
}

func TestSeed_RequiresPassword(t *testing.T) {
	opts := &RootOptions{loadConfig: func() (*config.Config, error) {
		return &config.Config{StoreDriver: config.DriverPostgres, AdminUsername: "admin"}, nil
	}}

	cmd := NewAdminCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}
