// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/playback"
	"github.com/ik5/audloop/playlist"
)

// Config holds the runtime settings of the looper, loaded from the
// environment. Command-line flags override individual fields.
type Config struct {
	// PlaylistFile is the store holding saved playlists.
	PlaylistFile string

	// Output device
	SampleRate int
	BufferSize time.Duration

	// Loading
	FailurePolicy playback.FailurePolicy
	MaxSamples    int

	LogLevel slog.Level
}

// Load reads configuration from environment variables with defaults.
// Malformed values fall back to the default.
func Load() Config {
	return Config{
		PlaylistFile:  envStr("ALOOPER_PLAYLIST_FILE", defaultPlaylistFile()),
		SampleRate:    envPositive("ALOOPER_SAMPLE_RATE", 48000),
		BufferSize:    time.Duration(envPositive("ALOOPER_BUFFER_MS", 100)) * time.Millisecond,
		FailurePolicy: envPolicy("ALOOPER_FAILURE_POLICY", playback.DiscardOnFailure),
		MaxSamples:    envPositive("ALOOPER_MAX_SAMPLES", audio.DefaultMaxSamples),
		LogLevel:      envLevel("ALOOPER_LOG_LEVEL", slog.LevelInfo),
	}
}

func defaultPlaylistFile() string {
	path, err := playlist.DefaultPath()
	if err != nil {
		return playlist.FileName
	}
	return path
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envPositive(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envPolicy(key string, fallback playback.FailurePolicy) playback.FailurePolicy {
	if v := os.Getenv(key); v != "" {
		if p, err := playback.ParseFailurePolicy(v); err == nil {
			return p
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
