package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid config")

// Validate checks the label schema and session settings. Key bindings are
// checked when the binder is built.
func (c Config) Validate() error {
	var errs []error
	if len(c.Labels) == 0 {
		errs = append(errs, errors.New("labels: at least one label group is required"))
	}
	groups := make(map[string]bool, len(c.Labels))
	for i, g := range c.Labels {
		name := strings.TrimSpace(g.Group)
		if name == "" {
			errs = append(errs, fmt.Errorf("labels[%d]: group name is empty", i))
			continue
		}
		if groups[name] {
			errs = append(errs, fmt.Errorf("labels[%d]: duplicate group %q", i, name))
		}
		groups[name] = true
		if len(g.Entries) == 0 {
			errs = append(errs, fmt.Errorf("labels.%s: no entries", name))
		}
		for j, e := range g.Entries {
			if strings.TrimSpace(e.Name) == "" {
				errs = append(errs, fmt.Errorf("labels.%s[%d]: label name is empty", name, j))
			}
			if e.Key == "" {
				errs = append(errs, fmt.Errorf("labels.%s[%d]: key is empty", name, j))
			}
		}
	}
	for name, seq := range c.Keys {
		if len(seq) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s: empty key sequence", name))
		}
		for _, k := range seq {
			if k == "" {
				errs = append(errs, fmt.Errorf("keys.%s: empty key name", name))
			}
		}
	}
	if strings.TrimSpace(c.Session.Name) == "" {
		errs = append(errs, errors.New("session.name is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
