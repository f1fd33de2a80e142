// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Fallback values applied after all sources have been merged, so a bare
// invocation still starts a usable development server.
const (
	defaultHTTPAddress    = ":8080"
	defaultUsersFile      = "data/users.csv"
	defaultUploadsDir     = "uploads"
	defaultSessionIssuer  = "pet-community"
	defaultSessionTTL     = 30 * time.Minute
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills in fallback values for every field no source set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.UsersFile == "" {
		cfg.Storage.UsersFile = defaultUsersFile
	}
	if cfg.Storage.UploadsDir == "" {
		cfg.Storage.UploadsDir = defaultUploadsDir
	}
	if cfg.App.SessionIssuer == "" {
		cfg.App.SessionIssuer = defaultSessionIssuer
	}
	if cfg.App.SessionTTL == 0 {
		cfg.App.SessionTTL = defaultSessionTTL
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SessionSignKey == "" {
		return ErrMissingSessionSignKey
	}

	return nil
}
