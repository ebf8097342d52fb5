// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package obslog installs the process-wide slog default handler this
// module's packages log through (see DESIGN.md: carried over from
// pkg/logging/logging.go's env-driven setup).
package obslog

import (
	"log/slog"
	"os"
)

const LogLevelEnvVar = "DEPCONF_LOG_LEVEL"

// Init reads DEPCONF_LOG_LEVEL (defaulting to info) and installs a text
// handler on stderr at that level as the slog default.
func Init() error {
	levelStr := os.Getenv(LogLevelEnvVar)
	if levelStr == "" {
		levelStr = "info"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
