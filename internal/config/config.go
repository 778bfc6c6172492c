/*
Package config implements the local-then-home configuration loader
(C6): a single `defaults` directive and any number of `alias`
directives, read from the first of `./CONFIG_FILE` or the user's home
directory CONFIG_FILE that exists, and used to rewrite argv before
dispatch.
*/
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
)

// FileName is the config file's base name: a dotfile on UNIX-like
// systems, a plain suffix on Windows, matching the original tool's
// platform convention.
func FileName() string {
	if runtime.GOOS == "windows" {
		return "csvfix.cfg"
	}

	return ".csvfix"
}

// A Config holds the parsed defaults body and alias table.
type Config struct {
	FilePath string // path actually loaded, empty if none found
	Defaults string
	Aliases  map[string]string // alias -> "command options..."
}

// Load searches the working directory then the user's home directory
// for CONFIG_FILE, parses the first one found, and returns an empty,
// valid Config if neither exists.
func Load() (*Config, error) {
	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, FileName())
		if cfg, err := loadFile(local); err == nil && cfg != nil {
			return cfg, nil
		} else if err != nil {
			return nil, err
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		userFile := filepath.Join(home, FileName())
		if cfg, err := loadFile(userFile); err == nil && cfg != nil {
			return cfg, nil
		} else if err != nil {
			return nil, err
		}
	}

	return &Config{Aliases: map[string]string{}}, nil
}

// loadFile returns nil, nil if path does not exist.
func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, csverr.Newf("cannot open config file %q: %v", path, err)
	}
	defer f.Close()

	cfg := &Config{FilePath: path, Aliases: map[string]string{}}

	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if ignorable(line) {
			continue
		}

		if err := cfg.processSetting(line); err != nil {
			return nil, csverr.AtLinef(path, lineNum, "%v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, csverr.Newf("reading config file %q: %v", path, err)
	}

	return cfg, nil
}

func ignorable(line string) bool {
	trimmed := strings.TrimSpace(line)

	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func (cfg *Config) processSetting(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "defaults":
		return cfg.processDefaults(line)
	case "alias":
		return cfg.processAlias(fields)
	default:
		return csverr.Newf("invalid configuration entry: %q", line)
	}
}

func (cfg *Config) processDefaults(line string) error {
	if cfg.Defaults != "" {
		return csverr.New("can specify defaults once only")
	}

	_, rest, _ := strings.Cut(line, "defaults")
	cfg.Defaults = strings.TrimSpace(rest)

	return nil
}

func (cfg *Config) processAlias(fields []string) error {
	if len(fields) < 2 {
		return csverr.New("no alias name")
	}

	alias := fields[1]
	if _, dup := cfg.Aliases[alias]; dup {
		return csverr.Newf("duplicate alias %q", alias)
	}

	if len(fields) < 3 {
		return csverr.Newf("no command for alias %q", alias)
	}

	cfg.Aliases[alias] = strings.Join(fields[2:], " ")

	return nil
}

// RewriteArgs implements spec.md §4.6's argv rewriting. argv[0] is the
// program name; argv[1], if present, is the would-be command name or
// alias.
func (cfg *Config) RewriteArgs(argv []string) ([]string, error) {
	if len(argv) < 2 {
		return argv, nil
	}

	if body, ok := cfg.Aliases[argv[1]]; ok {
		tokens, err := Tokenize(body)
		if err != nil {
			return nil, csverr.Newf("alias %q: %v", argv[1], err)
		}

		out := append([]string{argv[0]}, tokens...)

		return append(out, argv[2:]...), nil
	}

	if cfg.Defaults != "" {
		tokens, err := Tokenize(cfg.Defaults)
		if err != nil {
			return nil, csverr.Newf("defaults: %v", err)
		}

		out := append([]string{argv[0], argv[1]}, tokens...)

		return append(out, argv[2:]...), nil
	}

	return argv, nil
}

// Tokenize splits a defaults/alias body into words, respecting
// double- and single-quoted spans so an option value may itself
// contain whitespace. An unbalanced quote is an error.
func Tokenize(body string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		inTok  bool
		quote  rune
	)

	flush := func() {
		if inTok {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inTok = false
		}
	}

	for _, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inTok = true
		case r == ' ' || r == '\t':
			flush()
		default:
			inTok = true
			cur.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, csverr.New("unbalanced quote in configuration entry")
	}

	flush()

	return tokens, nil
}
