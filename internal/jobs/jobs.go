package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	yaml "go.yaml.in/yaml/v3"
)

// Parser accepts standard five-field specs, an optional leading seconds field
// and descriptors such as "@every 30s" or "@hourly".
var Parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type Definition struct {
	Name     string            `yaml:"name"`
	Schedule string            `yaml:"schedule"`
	Kind     string            `yaml:"kind"`
	Timeout  time.Duration     `yaml:"timeout"`
	Params   map[string]string `yaml:"params"`
}

type File struct {
	Jobs []Definition `yaml:"jobs"`
}

// Load reads and validates a jobs file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Jobs))
	for i, j := range f.Jobs {
		if j.Name == "" {
			return fmt.Errorf("job #%d: name is required", i)
		}
		if seen[j.Name] {
			return fmt.Errorf("job %q: duplicate name", j.Name)
		}
		seen[j.Name] = true
		if j.Kind == "" {
			return fmt.Errorf("job %q: kind is required", j.Name)
		}
		if j.Timeout < 0 {
			return fmt.Errorf("job %q: timeout must not be negative", j.Name)
		}
		if _, err := Parser.Parse(j.Schedule); err != nil {
			return fmt.Errorf("job %q: invalid schedule %q: %w", j.Name, j.Schedule, err)
		}
	}
	return nil
}
