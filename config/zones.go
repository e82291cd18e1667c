package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

// ZoneFile is the optional YAML seed: zones to upsert at startup and the
// zones each bus route passes through.
type ZoneFile struct {
	Zones       []domain.GeofenceZone `yaml:"zones"`
	Assignments map[string][]string   `yaml:"assignments"`
}

func LoadZoneFile(path string) (*ZoneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone file: %w", err)
	}
	var zf ZoneFile
	if err := yaml.Unmarshal(data, &zf); err != nil {
		return nil, fmt.Errorf("parse zone file %s: %w", path, err)
	}
	return &zf, nil
}
