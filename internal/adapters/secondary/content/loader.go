// Package content reads slide descriptions and template field values from disk.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// document accepts a full build config, a {slides: [...]} wrapper, or both
type document struct {
	entities.BuildConfig `yaml:",inline"`
	AltSlides            []entities.SlideContent `json:"slides" yaml:"slides"`
}

// LoadBuildConfig reads a build description. The file may hold a bare
// slide array, an object with `slides`, or a full build config with
// `slides_content`.
func LoadBuildConfig(path string) (*entities.BuildConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var config entities.BuildConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		config, err = decodeJSON(data)
	case ".yaml", ".yml":
		config, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported slide file format %q (use .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Brand kit paths are relative to the description file
	if p := config.BrandKit.Path; p != "" && !filepath.IsAbs(p) {
		config.BrandKit.Path = filepath.Join(filepath.Dir(path), p)
	}

	return &config, nil
}

// LoadSlides reads only the slide sequence of a description file
func LoadSlides(path string) ([]entities.SlideContent, error) {
	config, err := LoadBuildConfig(path)
	if err != nil {
		return nil, err
	}
	return config.Slides, nil
}

func decodeJSON(data []byte) (entities.BuildConfig, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var slides []entities.SlideContent
		if err := json.Unmarshal(trimmed, &slides); err != nil {
			return entities.BuildConfig{}, err
		}
		return entities.BuildConfig{Slides: slides}, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return entities.BuildConfig{}, err
	}
	return doc.resolve(), nil
}

func decodeYAML(data []byte) (entities.BuildConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return entities.BuildConfig{}, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return entities.BuildConfig{}, errors.New("empty document")
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var slides []entities.SlideContent
		if err := node.Decode(&slides); err != nil {
			return entities.BuildConfig{}, err
		}
		return entities.BuildConfig{Slides: slides}, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return entities.BuildConfig{}, err
	}
	return doc.resolve(), nil
}

func (d document) resolve() entities.BuildConfig {
	config := d.BuildConfig
	if len(config.Slides) == 0 {
		config.Slides = d.AltSlides
	}
	return config
}

// LoadValues reads a flat field map for template substitution. Scalar
// values of any type are converted to strings.
func LoadValues(path string) (map[string]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported values file format %q (use .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			values[key] = ""
		case string:
			values[key] = v
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("value for %q must be a scalar", key)
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, nil
}

// ParseAssignments turns key=value pairs into a field map
func ParseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", pair)
		}
		values[key] = value
	}
	return values, nil
}

// SortedKeys returns the keys of values in order
func SortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the user on purpose
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
