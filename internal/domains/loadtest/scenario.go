// Package loadtest drives synthetic catalog traffic against a running service
// and keeps track of the jobs that do so.
package loadtest

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrUnknownScenario = errors.New("unknown load test scenario")

// Mix weights the operations a virtual user performs.
type Mix struct {
	List   int `yaml:"list" json:"list"`
	Get    int `yaml:"get" json:"get"`
	Search int `yaml:"search" json:"search"`
	Create int `yaml:"create" json:"create"`
}

func (m Mix) total() int {
	return m.List + m.Get + m.Search + m.Create
}

// pick maps n in [0, total) to an operation.
func (m Mix) pick(n int) Operation {
	switch {
	case n < m.List:
		return OpList
	case n < m.List+m.Get:
		return OpGet
	case n < m.List+m.Get+m.Search:
		return OpSearch
	default:
		return OpCreate
	}
}

type Thresholds struct {
	P95         time.Duration `yaml:"p95" json:"p95"`
	MaxFailRate float64       `yaml:"maxFailRate" json:"maxFailRate"`
}

type Scenario struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	VUs         int           `yaml:"vus" json:"vus"`
	Duration    time.Duration `yaml:"duration" json:"duration"`
	// RPS caps the request rate across all virtual users; zero means unpaced.
	RPS        float64    `yaml:"rps" json:"rps"`
	Seed       bool       `yaml:"seed" json:"seed"`
	Mix        Mix        `yaml:"mix" json:"mix"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
}

var defaultMix = Mix{List: 50, Get: 30, Search: 15, Create: 5}

var builtins = map[string]Scenario{
	"smoke": {
		Name: "smoke", Description: "Basic functionality test with minimal load",
		VUs: 2, Duration: 2 * time.Minute, Seed: true, Mix: defaultMix,
		Thresholds: Thresholds{P95: 3 * time.Second, MaxFailRate: 0.05},
	},
	"load": {
		Name: "load", Description: "Normal expected load",
		VUs: 10, Duration: 5 * time.Minute, Seed: true, Mix: defaultMix,
		Thresholds: Thresholds{P95: 2 * time.Second, MaxFailRate: 0.01},
	},
	"stress": {
		Name: "stress", Description: "High load to find the breaking point",
		VUs: 30, Duration: 10 * time.Minute, Seed: true, Mix: defaultMix,
		Thresholds: Thresholds{P95: 5 * time.Second, MaxFailRate: 0.05},
	},
	"spike": {
		Name: "spike", Description: "Sudden burst of users",
		VUs: 50, Duration: 3 * time.Minute, Seed: true, Mix: defaultMix,
		Thresholds: Thresholds{P95: 10 * time.Second, MaxFailRate: 0.10},
	},
	"soak": {
		Name: "soak", Description: "Extended duration run to surface leaks",
		VUs: 10, Duration: 30 * time.Minute, Seed: true, Mix: defaultMix,
		Thresholds: Thresholds{P95: 2 * time.Second, MaxFailRate: 0.01},
	},
	"volume": {
		Name: "volume", Description: "Write-heavy run that grows the catalog",
		VUs: 20, Duration: 5 * time.Minute, Seed: true,
		Mix:        Mix{List: 30, Get: 20, Search: 10, Create: 40},
		Thresholds: Thresholds{P95: 3 * time.Second, MaxFailRate: 0.05},
	},
}

// Builtin returns a copy of the named predefined scenario.
func Builtin(name string) (Scenario, error) {
	sc, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return sc, nil
}

// Builtins lists the predefined scenarios ordered by name.
func Builtins() []Scenario {
	out := make([]Scenario, 0, len(builtins))
	for _, sc := range builtins {
		out = append(out, sc)
	}
	slices.SortFunc(out, func(a, b Scenario) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (s Scenario) Validate() error {
	switch {
	case s.VUs < 1:
		return errors.New("vus must be at least 1")
	case s.Duration <= 0:
		return errors.New("duration must be positive")
	case s.RPS < 0:
		return errors.New("rps must not be negative")
	case s.Mix.List < 0 || s.Mix.Get < 0 || s.Mix.Search < 0 || s.Mix.Create < 0:
		return errors.New("mix weights must not be negative")
	case s.Mix.total() == 0:
		return errors.New("mix must contain at least one operation")
	}
	return nil
}

// LoadScenario reads a YAML scenario file. A file may name a builtin in
// "extends" and override only some of its fields.
func LoadScenario(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

func ParseScenario(raw []byte) (Scenario, error) {
	var head struct {
		Extends string `yaml:"extends"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}

	sc := Scenario{Mix: defaultMix}
	if head.Extends != "" {
		base, err := Builtin(head.Extends)
		if err != nil {
			return Scenario{}, err
		}
		sc = base
	}
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = "custom"
	}
	return sc, sc.Validate()
}
