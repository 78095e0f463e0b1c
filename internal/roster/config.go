// Package roster loads declarative roster configuration and constructs
// competitors through the skill registry. All configuration and validation
// errors surface here, before the simulator runs a single trial.
package roster

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/oddsline/dicederby/internal/race"
)

// Config is the root of a roster file: one race block plus an ordered list
// of competitor blocks. Competitor order in the file is the roster order
// used for tie-breaking and intra-phase skill dispatch.
type Config struct {
	Race        *RaceSettings    `hcl:"race,block"`
	Competitors []CompetitorSpec `hcl:"competitor,block"`
}

// RaceSettings contains race-level configuration.
type RaceSettings struct {
	BoardLength int `hcl:"board_length,optional"`
	Trials      int `hcl:"trials,optional"`
}

// CompetitorSpec defines one competitor: name, underdog factor and an
// optional skill block. Competitors without a skill block get the inert
// skill.
type CompetitorSpec struct {
	Name           string     `hcl:"name,label"`
	UnderdogFactor float64    `hcl:"underdog_factor"`
	Skill          *SkillSpec `hcl:"skill,block"`
}

// SkillSpec names a registry entry plus its trigger probability and any
// skill-specific parameters.
type SkillSpec struct {
	Name        string  `hcl:"name,label"`
	Probability float64 `hcl:"probability"`
	Bonus       *int    `hcl:"bonus,optional"`
}

// Default returns the reference roster: a 24-square board, 200 trials and
// the six named competitors in their reference order.
func Default() *Config {
	return &Config{
		Race: &RaceSettings{
			BoardLength: 24,
			Trials:      200,
		},
		Competitors: []CompetitorSpec{
			{Name: "Calcharo", UnderdogFactor: 1.28, Skill: &SkillSpec{Name: "straggler_surge", Probability: 1.0}},
			{Name: "Carlotta", UnderdogFactor: 1.74, Skill: &SkillSpec{Name: "double_carry", Probability: 0.28}},
			{Name: "Changli", UnderdogFactor: 1.6, Skill: &SkillSpec{Name: "slip_ahead", Probability: 0.65}},
			{Name: "Jinhsi", UnderdogFactor: 1.1, Skill: &SkillSpec{Name: "top_of_stack", Probability: 0.4}},
			{Name: "Camellya", UnderdogFactor: 1.3, Skill: &SkillSpec{Name: "rider_bonus", Probability: 0.5}},
			{Name: "Shorekeeper", UnderdogFactor: 1.17, Skill: &SkillSpec{Name: "restricted_die", Probability: 1.0}},
		},
	}
}

// Load reads a roster file. A missing file yields the reference
// configuration; a present but malformed one is a configuration error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: parsing %s: %s", race.ErrConfiguration, filename, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: decoding %s: %s", race.ErrConfiguration, filename, diags.Error())
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Race == nil {
		config.Race = &RaceSettings{}
	}
	if config.Race.BoardLength == 0 {
		config.Race.BoardLength = 24
	}
	if config.Race.Trials == 0 {
		config.Race.Trials = 200
	}
}

// Build constructs the roster through the registry, preserving file order.
// Unknown skill names, duplicate competitor names and out-of-range values
// all fail here.
func Build(registry *race.Registry, config *Config) ([]*race.Competitor, error) {
	if len(config.Competitors) == 0 {
		return nil, fmt.Errorf("%w: roster has no competitors", race.ErrConfiguration)
	}

	roster := make([]*race.Competitor, 0, len(config.Competitors))
	for _, spec := range config.Competitors {
		skill, err := buildSkill(registry, spec)
		if err != nil {
			return nil, err
		}
		c, err := race.NewCompetitor(spec.Name, spec.UnderdogFactor, skill)
		if err != nil {
			return nil, err
		}
		roster = append(roster, c)
	}
	if err := race.ValidateRoster(roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func buildSkill(registry *race.Registry, spec CompetitorSpec) (race.Skill, error) {
	if spec.Skill == nil {
		return registry.New("inert", 0, race.Params{})
	}
	params := race.Params{}
	if spec.Skill.Bonus != nil {
		params.Bonus = *spec.Skill.Bonus
	}
	skill, err := registry.New(spec.Skill.Name, spec.Skill.Probability, params)
	if err != nil {
		return nil, fmt.Errorf("competitor %q: %w", spec.Name, err)
	}
	return skill, nil
}
