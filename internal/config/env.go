package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvDB       = "BLOCKFALL_DB"
	EnvConfig   = "BLOCKFALL_CONFIG"
	EnvLog      = "BLOCKFALL_LOG"
	EnvSpectate = "BLOCKFALL_SPECTATE"
)

// Env holds settings taken from the process environment.
// Empty fields mean "not set".
type Env struct {
	DBPath       string
	ConfigPath   string
	LogPath      string
	SpectateAddr string
}

// LoadEnv loads dotenv files into the process environment, then reads the
// BLOCKFALL_* variables. Variables already set win over file values. With no
// files, ./.env is tried; a missing file is not an error.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return readEnv(), err
	}
	return readEnv(), nil
}

func readEnv() Env {
	return Env{
		DBPath:       os.Getenv(EnvDB),
		ConfigPath:   os.Getenv(EnvConfig),
		LogPath:      os.Getenv(EnvLog),
		SpectateAddr: os.Getenv(EnvSpectate),
	}
}
