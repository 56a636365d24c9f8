// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy holds the static, versioned default category tree. It
// serves three roles: seed content when the categories collection is
// first observed empty, a fallback for category listings before seeding,
// and reference data for category/subcategory validation.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"byteclave/internal/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Version    int               `yaml:"version"`
	Categories []models.Category `yaml:"categories"`
}

var (
	loadOnce sync.Once
	loaded   defaultsFile
	loadErr  error
)

func load() (defaultsFile, error) {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(defaultsYAML, &loaded); err != nil {
			loadErr = fmt.Errorf("parse taxonomy defaults: %w", err)
			return
		}
		if len(loaded.Categories) == 0 {
			loadErr = fmt.Errorf("taxonomy defaults are empty")
		}
	})
	return loaded, loadErr
}

// Version returns the generation number of the embedded tree, or 0 when
// the embedded file is unreadable.
func Version() int {
	f, err := load()
	if err != nil {
		return 0
	}
	return f.Version
}

// Default returns a fresh copy of the default category set. The embedded
// file is parsed once; callers may mutate the returned slice freely.
func Default() []models.Category {
	f, err := load()
	if err != nil {
		// The file is compiled into the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(err)
	}

	out := make([]models.Category, len(f.Categories))
	for i, c := range f.Categories {
		c.Subcategories = append([]string(nil), c.Subcategories...)
		c.Tags = append([]string(nil), c.Tags...)
		out[i] = c
	}
	return out
}
