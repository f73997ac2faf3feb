package main

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config tunes cli behavior; all fields are optional. Labels maps discovery
// names ("fan1".."fan6") to display names.
type Config struct {
	Debug  bool              `yaml:"debug"`
	Labels map[string]string `yaml:"labels"`
}

var reLabel = regexp.MustCompile(`^fan([1-6])$`)

func LoadConfig(path string) (Config, error) {
	var c Config

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	codec := yaml.NewDecoder(f)
	err = codec.Decode(&c)
	if err != nil {
		return c, err
	}

	for name, label := range c.Labels {
		if !reLabel.MatchString(name) {
			return c, fmt.Errorf("%s: invalid fan name", name)
		}
		if label == "" {
			return c, fmt.Errorf("%s: empty label", name)
		}
	}
	return c, nil
}

// Label resolves the display name of a fan channel, preferring a configured
// override over the discovery label.
func (c Config) Label(channel int, discovered string) string {
	if label, ok := c.Labels[fmt.Sprintf("fan%d", channel+1)]; ok {
		return label
	}
	return discovered
}
