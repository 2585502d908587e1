// Package config defines the sesskv-server configuration structure.
//
// Configuration is loaded through internal/infra/confloader with the
// priority env > file > defaults, env prefix SESSKV_.
package config
