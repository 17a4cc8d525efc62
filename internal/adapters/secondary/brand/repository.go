package brand

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Repository reads and writes brand kit files. The encoding follows the
// file extension: .json, .yaml/.yml or .toml.
type Repository struct{}

// NewRepository creates a brand kit repository
func NewRepository() *Repository {
	return &Repository{}
}

// Load reads and validates a brand kit. A relative logo path is resolved
// against the kit's directory.
func (r *Repository) Load(path string) (*entities.BrandKit, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the user on purpose
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("brand kit not found: %s", path)
		}
		return nil, fmt.Errorf("reading brand kit: %w", err)
	}

	var kit entities.BrandKit
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &kit)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &kit)
	case ".toml":
		_, err = toml.Decode(string(data), &kit)
	default:
		return nil, fmt.Errorf("unsupported brand kit format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing brand kit %s: %w", path, err)
	}

	if err := kit.Validate(); err != nil {
		return nil, fmt.Errorf("brand kit %s: %w", path, err)
	}

	if kit.LogoPath != "" && !filepath.IsAbs(kit.LogoPath) {
		kit.LogoPath = filepath.Join(filepath.Dir(path), kit.LogoPath)
	}

	return &kit, nil
}

// Save writes kit to path, creating parent directories
func (r *Repository) Save(path string, kit *entities.BrandKit) error {
	if err := kit.Validate(); err != nil {
		return err
	}

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(kit, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(kit)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(kit)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported brand kit format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encoding brand kit: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing brand kit: %w", err)
	}
	return nil
}

// Starter returns the kit written by `brand init`
func Starter(name string) *entities.BrandKit {
	kit := entities.NewBrandKit(name)
	kit.PrimaryColors = []string{"#" + entities.DefaultPalette.Primary.Hex(), "#" + entities.DefaultPalette.PrimaryLight.Hex()}
	kit.SecondaryColors = []string{"#" + entities.DefaultPalette.Secondary.Hex(), "#" + entities.DefaultPalette.Accent.Hex()}
	return kit
}

var _ ports.BrandRepository = (*Repository)(nil)
