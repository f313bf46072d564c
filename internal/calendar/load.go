package calendar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Open          string `yaml:"open"`
	Close         string `yaml:"close"`
	StepMinutes   int    `yaml:"step_minutes"`
	BufferMinutes *int   `yaml:"buffer_minutes"`
	Breaks        []struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"breaks"`
	Services []struct {
		Name            string `yaml:"name"`
		DurationMinutes int    `yaml:"duration_minutes"`
		Price           int64  `yaml:"price"`
	} `yaml:"services"`
	Styles []struct {
		Name        string `yaml:"name"`
		BaseService string `yaml:"base_service"`
		Price       int64  `yaml:"price"`
	} `yaml:"styles"`
}

// LoadRules reads rules from a YAML file. Sections left out of the file keep
// their default values.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidRules, err)
	}

	opts := DefaultOptions()

	if f.Open != "" {
		t, err := ParseTimeOfDay(f.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: open: %v", ErrInvalidRules, err)
		}
		opts.Open = t
	}
	if f.Close != "" {
		t, err := ParseTimeOfDay(f.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: close: %v", ErrInvalidRules, err)
		}
		opts.Close = t
	}
	if f.StepMinutes != 0 {
		opts.StepMinutes = f.StepMinutes
	}
	if f.BufferMinutes != nil {
		opts.BufferMinutes = *f.BufferMinutes
	}

	if f.Breaks != nil {
		opts.Breaks = make([]Interval, 0, len(f.Breaks))
		for _, b := range f.Breaks {
			start, err := ParseTimeOfDay(b.Start)
			if err != nil {
				return nil, fmt.Errorf("%w: break start: %v", ErrInvalidRules, err)
			}
			end, err := ParseTimeOfDay(b.End)
			if err != nil {
				return nil, fmt.Errorf("%w: break end: %v", ErrInvalidRules, err)
			}
			opts.Breaks = append(opts.Breaks, Interval{Start: start, End: end})
		}
	}

	if f.Services != nil {
		opts.Services = make([]Service, 0, len(f.Services))
		for _, s := range f.Services {
			opts.Services = append(opts.Services, Service{Name: s.Name, Duration: s.DurationMinutes, Price: s.Price})
		}
	}

	if f.Styles != nil {
		opts.Styles = make([]Style, 0, len(f.Styles))
		for _, st := range f.Styles {
			opts.Styles = append(opts.Styles, Style{Name: st.Name, BaseService: st.BaseService, Price: st.Price})
		}
	}

	return NewRules(opts)
}
