package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/jxo-me/ddns-updater/core/errs"
)

const (
	OptionHost        = "host"
	OptionDomain      = "domain"
	OptionURLRoot     = "url_root"
	OptionSecretsFile = "secrets_file"
)

// Store is the provider configuration: one ini section per DDNS provider.
// It is read once by Load and never modified afterwards; secrets are not
// part of it and are read from disk on every Secret call.
type Store struct {
	path     string
	sections []string
	options  map[string]map[string]string
}

// Load parses the ini file at path. A missing file yields ErrConfigNotFound;
// a file that parses to no sections, or does not parse at all, yields
// ErrConfigEmpty.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errs.ErrConfigNotFound, "config file %s does not exist", path)
		}
		return nil, errors.Wrapf(errs.ErrConfigNotFound, "config file %s: %v", path, err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrConfigEmpty, "config file %s could not be parsed (%v)", path, err)
	}

	defaults := f.Section(ini.DefaultSection).KeysHash()
	s := &Store{
		path:    path,
		options: make(map[string]map[string]string),
	}
	for _, name := range f.SectionStrings() {
		if strings.EqualFold(name, ini.DefaultSection) {
			continue
		}
		opts := make(map[string]string, len(defaults))
		for k, v := range defaults {
			opts[k] = v
		}
		for _, key := range f.Section(name).Keys() {
			opts[key.Name()] = key.String()
		}
		s.sections = append(s.sections, name)
		s.options[name] = opts
	}
	if len(s.sections) == 0 {
		return nil, errors.Wrapf(errs.ErrConfigEmpty, "config file %s seems empty; if it is not, syntax problems?", path)
	}
	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Sections returns the provider section names in file order.
func (s *Store) Sections() []string {
	out := make([]string, len(s.sections))
	copy(out, s.sections)
	return out
}

func (s *Store) HasSection(name string) bool {
	_, ok := s.options[strings.ToLower(name)]
	return ok
}

// Section returns the named provider section, or ErrSectionMissing.
func (s *Store) Section(name string) (*Section, error) {
	key := strings.ToLower(name)
	opts, ok := s.options[key]
	if !ok {
		return nil, errors.Wrapf(errs.ErrSectionMissing, "service '%s' has no entry in config file %s", name, s.path)
	}
	return &Section{name: key, options: opts}, nil
}

// Secret reads the credential of the named provider from the file given by
// its secrets_file option. The file is read on every call so a rotated
// secret is picked up without a restart.
func (s *Store) Secret(name string) (string, error) {
	sec, err := s.Section(name)
	if err != nil {
		return "", err
	}
	return sec.Secret()
}

// SecretPath returns the expanded secrets_file path of the named provider.
func (s *Store) SecretPath(name string) (string, error) {
	sec, err := s.Section(name)
	if err != nil {
		return "", err
	}
	raw, err := sec.Option(OptionSecretsFile)
	if err != nil {
		return "", err
	}
	return ExpandPath(raw), nil
}

// ExpandPath resolves environment references ($VAR, ${VAR}) and a leading
// tilde. Unknown variables are left as written.
func ExpandPath(path string) string {
	expanded := os.Expand(path, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "$" + name
	})
	if expanded == "~" || strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[1:])
	}
	return expanded
}

// Section is one provider's options.
type Section struct {
	name    string
	options map[string]string
}

func (s *Section) Name() string {
	return s.name
}

// Option returns the value of key or a MissingOptionError naming it.
func (s *Section) Option(key string) (string, error) {
	v, ok := s.options[strings.ToLower(key)]
	if !ok {
		return "", &errs.MissingOptionError{Section: s.name, Option: key}
	}
	return v, nil
}

func (s *Section) Lookup(key string) (string, bool) {
	v, ok := s.options[strings.ToLower(key)]
	return v, ok
}

// Options returns a copy of all options of the section.
func (s *Section) Options() map[string]string {
	out := make(map[string]string, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out
}

// Domain returns the host and domain options of the section.
func (s *Section) Domain() (Domain, error) {
	host, err := s.Option(OptionHost)
	if err != nil {
		return Domain{}, err
	}
	name, err := s.Option(OptionDomain)
	if err != nil {
		return Domain{}, err
	}
	return Domain{Host: host, Name: name}, nil
}

// Secret reads the section's secrets_file, trimming surrounding whitespace.
func (s *Section) Secret() (string, error) {
	raw, err := s.Option(OptionSecretsFile)
	if err != nil {
		return "", err
	}
	path := ExpandPath(raw)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(errs.ErrSecretUnreadable, "could not open secrets file '%s' (%v)", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
