package category

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by seed-categories:
//
//	categories:
//	  - name: World
//	  - name: Tech
type SeedFile struct {
	Categories []struct {
		Name string `yaml:"name"`
	} `yaml:"categories"`
}

func LoadSeedFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed returns the trimmed category names in file order.
func ParseSeed(data []byte) ([]string, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	names := make([]string, 0, len(f.Categories))
	for i, c := range f.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category #%d: name is empty", i+1)
		}
		if len([]rune(name)) > 255 {
			return nil, fmt.Errorf("category #%d: name longer than 255 characters", i+1)
		}
		names = append(names, name)
	}
	return names, nil
}

// Seed creates the categories that do not exist yet and reports how many it added.
func Seed(ctx context.Context, repo *Repo, names []string) (int, error) {
	created := 0
	for _, name := range names {
		existing, err := repo.GetByName(ctx, name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if _, err := repo.Create(ctx, name); err != nil {
			return created, fmt.Errorf("seed %q: %w", name, err)
		}
		created++
	}
	return created, nil
}
