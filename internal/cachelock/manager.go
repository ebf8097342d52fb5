// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cachelock provides the coarse cross-process lock the
// configuration resolver's artifact-materialization path serializes
// against: reading an artifact's file, or running a transform against it,
// must happen inside UseCache so two callers never race on the same cache
// scope.
package cachelock

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/fslock"
)

// Manager owns one on-disk lock file per cache scope and serializes
// UseCache calls against it two ways: a per-scope in-process mutex, so
// goroutines within this process contending on the same scope (e.g. many
// artifacts of the same external module) block on a cheap mutex rather than
// all polling the lock file at once, and the fslock file itself, which
// guards against another process (a concurrent build invocation) doing the
// same.
type Manager struct {
	baseDir string

	mu         sync.Mutex
	scopeLocks map[string]*sync.Mutex
}

func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir, scopeLocks: map[string]*sync.Mutex{}}
}

func (m *Manager) scopeLock(scope string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.scopeLocks[scope]
	if !ok {
		l = &sync.Mutex{}
		m.scopeLocks[scope] = l
	}
	return l
}

// UseCache runs action while holding scope's lock, blocking until it is
// available or ctx is cancelled.
func (m *Manager) UseCache(ctx context.Context, scope string, action func() error) error {
	inProcess := m.scopeLock(scope)
	inProcess.Lock()
	defer inProcess.Unlock()

	lockFilePath := filepath.Join(m.baseDir, scope+".lock")
	if err := os.MkdirAll(filepath.Dir(lockFilePath), 0o755); err != nil {
		return err
	}

	fileLock := fslock.New(lockFilePath)
	if err := fileLock.TryLock(); errors.Is(err, fslock.ErrLocked) {
		slog.Debug("waiting for cache lock", "scope", scope)
		if err := pollUntilLocked(ctx, fileLock); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	defer func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Warn("failed to release cache lock", "scope", scope, "err", err.Error())
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return action()
	}
}

// pollUntilLocked retries TryLock with a capped exponential backoff: cache
// scopes here are contended by many short-lived artifact/transform reads
// rather than one long-held install lock, so backing off keeps repeated
// contention cheap instead of hammering the lock file at a fixed interval.
func pollUntilLocked(ctx context.Context, lock *fslock.Lock) error {
	const maxDelay = 200 * time.Millisecond
	delay := 10 * time.Millisecond
	for {
		if err := lock.TryLock(); err == nil {
			return nil
		} else if !errors.Is(err, fslock.ErrLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}
