package env

import (
	"log"
	"os"
	"strings"

	"github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

type EnvLine struct {
	Key string `json:"key"`
	Val string `json:"val"`
}

// ParseEnvFile parses an environment file and returns a list of EnvLine structs.
// A missing file is not an error.
func ParseEnvFile(filename string) ([]EnvLine, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return []EnvLine{}, nil
	}
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "env: read %s", filename)
	}
	return ParseEnvBuffer(buf)
}

func dequote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ProcessEnvLine splits a KEY=value line, removing matching quotes around the value.
// A leading "export " is ignored.
func ProcessEnvLine(line string) EnvLine {
	line = strings.TrimPrefix(line, "export ")
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return EnvLine{Key: strings.TrimSpace(line)}
	}
	return EnvLine{Key: strings.TrimSpace(key), Val: dequote(strings.TrimSpace(val))}
}

// interpolate replaces ${NAME} and ${NAME:-default} with values seen earlier in the file, then
// from the process environment. Unknown references without a default are kept as is.
func interpolate(val string, seen map[string]string) string {
	var out strings.Builder
	for {
		start := strings.Index(val, "${")
		if start < 0 {
			break
		}
		end := strings.IndexByte(val[start:], '}')
		if end < 0 {
			break
		}
		end += start
		out.WriteString(val[:start])
		name, def, _ := strings.Cut(val[start+2:end], ":-")
		if v, ok := seen[name]; ok && v != "" {
			out.WriteString(v)
		} else if v := os.Getenv(name); v != "" {
			out.WriteString(v)
		} else if def != "" {
			out.WriteString(def)
		} else {
			out.WriteString(val[start : end+1])
		}
		val = val[end+1:]
	}
	out.WriteString(val)
	return out.String()
}

// ParseEnvBuffer parses an environment buffer and returns a list of EnvLine structs.
// Blank lines and lines starting with # are skipped.
func ParseEnvBuffer(buf []byte) ([]EnvLine, error) {
	envs := make([]EnvLine, 0)
	seen := make(map[string]string)
	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		env := ProcessEnvLine(line)
		if env.Key == "" {
			continue
		}
		env.Val = interpolate(env.Val, seen)
		seen[env.Key] = env.Val
		envs = append(envs, env)
	}
	return envs, nil
}

// Apply sets every line in the process environment unless the variable is already set.
func Apply(envs []EnvLine) error {
	for _, e := range envs {
		if _, ok := os.LookupEnv(e.Key); ok {
			continue
		}
		if err := os.Setenv(e.Key, e.Val); err != nil {
			return errors.Wrapf(err, "env: set %s", e.Key)
		}
	}
	return nil
}

// FlagOrEnv will try and get a flag from the cobra.Command and if not found, look it up in the environment
// and fallback to defaultValue if non found
func FlagOrEnv(cmd *cobra.Command, flagName string, envName string, defaultValue string) string {
	flagValue, _ := cmd.Flags().GetString(flagName)
	if flagValue != "" {
		return flagValue
	}
	if val, ok := os.LookupEnv(envName); ok {
		return val
	}
	return defaultValue
}

// LogLevel reads the log-level flag, then KARMA_LOG_LEVEL, defaulting to info.
func LogLevel(cmd *cobra.Command) logger.LogLevel {
	level, ok := logger.ParseLevel(FlagOrEnv(cmd, "log-level", logger.LogLevelEnv, "info"))
	if !ok {
		return logger.LevelInfo
	}
	return level
}

// NewLogger returns a console logger at the level given by LogLevel.
func NewLogger(cmd *cobra.Command) logger.Logger {
	log.SetFlags(0)
	return logger.NewConsoleLogger(LogLevel(cmd))
}
