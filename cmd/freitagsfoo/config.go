package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/freitagsfoo"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is a kong.ConfigurationLoader reading flat YAML files whose keys
// are flag names, e.g.
//
//	api-url: https://wiki.chaosdorf.de/api.php
//	mode: scan
//	metrics_file: /var/lib/node_exporter/freitagsfoo.prom
//
// Underscores may stand in for hyphens.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}

	var f kong.ResolverFunc = func(ctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			v, ok := values[key]
			if !ok || v == nil {
				continue
			}
			switch v := v.(type) {
			case string:
				return v, nil
			case time.Time:
				// Unquoted YAML dates decode as timestamps.
				return v.Format(freitagsfoo.DateLayout), nil
			case map[string]any, []any:
				return nil, fmt.Errorf("config key %q must be a scalar", key)
			default:
				return fmt.Sprint(v), nil
			}
		}
		return nil, nil
	}
	return f, nil
}
