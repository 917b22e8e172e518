// Package tomlpatch merges YAML-sourced overrides into the node's TOML
// configuration files, preserving every key the overrides do not touch.
package tomlpatch

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/snapfetch/snapfetch/internal/logger"
	"github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
)

// Patcher applies overrides to the TOML files under <home>/config.
type Patcher struct {
	homeDir string
}

// New creates a Patcher for the given node home directory.
func New(homeDir string) *Patcher {
	return &Patcher{homeDir: homeDir}
}

// Apply merges appOverrides into config/app.toml and configOverrides into
// config/config.toml. Nil or empty override maps are skipped.
func (p *Patcher) Apply(appOverrides, configOverrides map[string]interface{}) error {
	if len(appOverrides) > 0 {
		if err := p.patchFile("app.toml", appOverrides); err != nil {
			return errors.Wrap(err, "failed to modify app.toml")
		}
	}
	if len(configOverrides) > 0 {
		if err := p.patchFile("config.toml", configOverrides); err != nil {
			return errors.Wrap(err, "failed to modify config.toml")
		}
	}
	return nil
}

func (p *Patcher) patchFile(name string, overrides map[string]interface{}) error {
	path := filepath.Join(p.homeDir, "config", name)
	logger.Info("Applying configuration overrides", logger.Fields{"file": path})

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	merged := Merge(doc, normalize(overrides))

	out, err := toml.Marshal(merged)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize %s", path)
	}

	if err := os.WriteFile(path, out, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Debug("Configuration file updated", logger.Fields{"file": path})
	return nil
}

// Merge deep-merges overrides into base: nested maps merge recursively, any
// other value in overrides replaces the base value. Keys absent from
// overrides are left untouched. The result is a new map.
func Merge(base, overrides map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(overrides))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overrides {
		baseMap, baseOK := result[k].(map[string]interface{})
		overMap, overOK := v.(map[string]interface{})
		if baseOK && overOK {
			result[k] = Merge(baseMap, overMap)
			continue
		}
		result[k] = v
	}
	return result
}

// normalize rewrites the map shapes yaml.v3 produces into the string-keyed
// form the TOML encoder accepts, descending into nested maps and slices.
func normalize(value map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(value))
	for k, v := range value {
		result[k] = normalizeValue(v)
	}
	return result
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return normalize(v)
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeValue(val)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case nil:
		return ""
	default:
		return v
	}
}
