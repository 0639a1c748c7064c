// @license
// Copyright (C) 2024  Tynobi Company
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/Tynobi-Company/webuntis-headless/logger"
	"github.com/joho/godotenv"
)

const (
	envBaseHost = "WEBUNTIS_BASEHOST"
	envSchool   = "WEBUNTIS_SCHOOL"
	envUsername = "WEBUNTIS_USERNAME"
	envPassword = "WEBUNTIS_PASSWORD"
	envTimeout  = "WEBUNTIS_TIMEOUT"
	envRetries  = "WEBUNTIS_RETRIES"
)

// LoadConfig attempts to load and decode configuration file in TOML format,
// doing a minimal sanity checking and optionally returning an error.
func LoadConfig(file string) (Config, error) {
	var config Config
	if _, err := toml.DecodeFile(file, &config); err != nil {
		return config, err
	}

	checkBackendConf(config)
	checkUserConf(config)

	return config, nil
}

// LoadEnv builds a configuration from WEBUNTIS_* environment variables,
// reading a .env file first when one exists, and applies the same sanity
// checks as LoadConfig.
func LoadEnv() Config {
	// a missing .env file is fine, the process environment still applies
	godotenv.Load() //nolint:errcheck

	var config Config
	overrideFromEnv(&config)

	checkBackendConf(config)
	checkUserConf(config)

	return config
}

// overrideFromEnv overwrites every configuration field that has a
// corresponding WEBUNTIS_* environment variable set.
func overrideFromEnv(config *Config) {
	if v, ok := os.LookupEnv(envBaseHost); ok {
		config.BaseHost = v
	}

	if v, ok := os.LookupEnv(envSchool); ok {
		config.School = v
	}

	if v, ok := os.LookupEnv(envUsername); ok {
		config.Username = v
	}

	if v, ok := os.LookupEnv(envPassword); ok {
		config.Password = v
	}

	if v, ok := os.LookupEnv(envTimeout); ok {
		if t, err := strconv.ParseUint(v, 10, 32); err == nil {
			config.Timeout = uint(t)
		}
	}

	if v, ok := os.LookupEnv(envRetries); ok {
		if r, err := strconv.ParseUint(v, 10, 32); err == nil {
			config.Retries = uint(r)
		}
	}
}

// checkBackendConf does a minimal sanity check on the backend block,
// ensuring that:
//
// 1. the backend host is defined and is a bare hostname, not a URL
//
// 2. the school identifier is defined
//
// If any of these conditions are not met, the program will log a fatal error
// and exit.
func checkBackendConf(config Config) {
	if config.BaseHost == "" {
		logger.Fatal().Msg("Configuration error: no backend host defined")
	}

	if !isValidHost(config.BaseHost) {
		logger.Fatal().Msgf("Configuration error: backend host %q is not a valid hostname (scheme and path must be omitted)", config.BaseHost)
	}

	if config.School == "" {
		logger.Fatal().Msg("Configuration error: no school identifier defined")
	}
}

// checkUserConf does a minimal sanity check on the user block, ensuring that
// both username and password are present. A username in user@domain format
// is accepted but not required; WebUntis schools differ here.
func checkUserConf(config Config) {
	if config.Username == "" || config.Password == "" {
		logger.Fatal().Msg("Configuration error: user requires username and password")
	}

	if !isValidUsername(config.Username) {
		logger.Warn().Msgf("Configuration issue: username %q contains whitespace", config.Username)
	}
}
