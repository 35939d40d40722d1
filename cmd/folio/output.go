package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/folio/pkg/typed"
)

// render writes v as JSON or YAML, or calls text for the text format.
func (a *app) render(w io.Writer, v any, text func() error) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		return text()
	}
}

// parseForm builds editor input from a YAML file and --set pairs.
// Pairs are applied after the file, so they win on conflicts.
func parseForm(from string, sets []string) (typed.Form, error) {
	form := typed.Form{}

	if from != "" {
		raw, err := os.ReadFile(from)
		if err != nil {
			return nil, fmt.Errorf("read form: %w", err)
		}
		var values map[string]any
		if err := yaml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("parse form %s: %w", from, err)
		}
		for k, v := range values {
			form[k] = formValue(v)
		}
	}

	for _, pair := range sets {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		form[strings.TrimSpace(k)] = v
	}
	return form, nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		tokens := make([]string, 0, len(t))
		for _, item := range t {
			tokens = append(tokens, fmt.Sprint(item))
		}
		return typed.JoinList(tokens)
	default:
		return fmt.Sprint(t)
	}
}
