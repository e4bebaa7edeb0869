package configx

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"

	"github.com/godastic/godastic/logrusx"
)

const envPrefix = "GODASTIC_"

// ConnectionSettings holds everything needed to open a client against the
// document store. It mirrors the subset of the elasticsearch client config
// this library cares about; anything beyond that belongs to the caller.
type ConnectionSettings struct {
	Addresses []string `json:"addresses"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	CloudID   string   `json:"cloudId"`
	APIKey    string   `json:"apiKey"`
}

type tuple struct {
	Key   string
	Value interface{}
}

// Provider loads connection settings from defaults, yaml files and the
// environment, in that order of precedence (later sources win).
type Provider struct {
	*koanf.Koanf

	files             []string
	forcedValues      []tuple
	disableEnvLoading bool
	logger            *logrusx.Logger
}

type OptionModifier func(p *Provider)

func WithConfigFiles(files ...string) OptionModifier {
	return func(p *Provider) {
		p.files = append(p.files, files...)
	}
}

func WithValue(key string, value interface{}) OptionModifier {
	return func(p *Provider) {
		p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})
	}
}

func DisableEnvLoading() OptionModifier {
	return func(p *Provider) {
		p.disableEnvLoading = true
	}
}

func WithLogger(l *logrusx.Logger) OptionModifier {
	return func(p *Provider) {
		p.logger = l
	}
}

// New creates a Provider and loads all configured sources.
func New(modifiers ...OptionModifier) (*Provider, error) {
	p := &Provider{
		Koanf:  koanf.New("."),
		logger: logrusx.New("godastic.config"),
	}

	for _, m := range modifiers {
		m(p)
	}

	if err := p.Koanf.Load(confmap.Provider(map[string]interface{}{
		"elasticsearch.addresses": []string{"http://localhost:9200"},
	}, "."), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, path := range p.files {
		if err := p.Koanf.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.WithStack(err)
		}
		p.logger.WithField("file", path).Debug("loaded config file")
	}

	if !p.disableEnvLoading {
		// GODASTIC_ELASTICSEARCH_USERNAME -> elasticsearch.username
		if err := p.Koanf.Load(env.Provider(envPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
		}), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	for _, v := range p.forcedValues {
		if err := p.Koanf.Load(confmap.Provider(map[string]interface{}{v.Key: v.Value}, "."), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return p, nil
}

// ConnectionSettings extracts the elasticsearch connection block.
func (p *Provider) ConnectionSettings() ConnectionSettings {
	return ConnectionSettings{
		Addresses: p.Strings("elasticsearch.addresses"),
		Username:  p.String("elasticsearch.username"),
		Password:  p.String("elasticsearch.password"),
		CloudID:   p.String("elasticsearch.cloudid"),
		APIKey:    p.String("elasticsearch.apikey"),
	}
}
