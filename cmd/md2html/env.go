package main

import (
	"io"
	"os"
	"strings"
	"time"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// envPrefix marks the variables this program reads.
const envPrefix = "MD2HTML_"

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":    true,
	"MD2HTML_TIMEOUT":   true,
	"MD2HTML_CONTAINER": true,
}

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // MD2HTML_CONFIG: config name or path
	Timeout    string // MD2HTML_TIMEOUT: PDF export timeout
}

// loadEnvConfig reads the recognized MD2HTML_* values.
func loadEnvConfig(env *Environment) envConfig {
	return envConfig{
		ConfigPath: env.Getenv("MD2HTML_CONFIG"),
		Timeout:    env.Getenv("MD2HTML_TIMEOUT"),
	}
}

// unknownEnvVars returns MD2HTML_* variables that are not recognized,
// catching typos like MD2HTML_CONFG.
func unknownEnvVars(env *Environment) []string {
	var unknown []string
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
