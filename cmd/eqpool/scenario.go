package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/eqpool/connection"
	"github.com/katalvlaran/eqpool/species"
)

// Scenario is the YAML input: the mixture temperature, the species list
// with initial concentrations and optional thermo, and the observed
// reactions with their rate constants.
type Scenario struct {
	Temperature float64        `yaml:"temperature" validate:"required,gt=0"`
	Species     []SpeciesSpec  `yaml:"species" validate:"required,min=1,unique=Name,dive"`
	Reactions   []ReactionSpec `yaml:"reactions" validate:"required,min=1,dive"`
}

// SpeciesSpec declares one species. Thermo is optional: species without
// it contribute zero enthalpy and entropy, which is fine whenever every
// reaction touching them carries rate constants.
type SpeciesSpec struct {
	Name          string      `yaml:"name" validate:"required"`
	Concentration float64     `yaml:"concentration" validate:"gte=0"`
	Thermo        *ThermoSpec `yaml:"thermo"`
}

// ThermoSpec selects one of the two thermo models: a seven-coefficient
// NASA polynomial when nasa7 is present, otherwise constant H298/S298.
type ThermoSpec struct {
	H298  float64   `yaml:"h298"`
	S298  float64   `yaml:"s298"`
	NASA7 []float64 `yaml:"nasa7" validate:"omitempty,len=7"`
	Tmin  float64   `yaml:"tmin"`
	Tmax  float64   `yaml:"tmax"`
}

// ReactionSpec is one observed reaction over species names.
type ReactionSpec struct {
	Reactants []string `yaml:"reactants" validate:"required,min=1,max=2,dive,required"`
	Products  []string `yaml:"products" validate:"required,min=1,max=2,dive,required"`
	Kf        float64  `yaml:"kf" validate:"gte=0"`
	Kb        float64  `yaml:"kb" validate:"gte=0"`
}

var validate = validator.New()

// LoadScenario reads, parses and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	return &s, nil
}

// Names returns the species names in declaration order.
func (s *Scenario) Names() []string {
	names := make([]string, len(s.Species))
	for i, sp := range s.Species {
		names[i] = sp.Name
	}
	return names
}

// Concentrations returns the initial concentrations in species order.
func (s *Scenario) Concentrations() []float64 {
	conc := make([]float64, len(s.Species))
	for i, sp := range s.Species {
		conc[i] = sp.Concentration
	}
	return conc
}

// Thermo builds the species thermo table in species order.
func (s *Scenario) Thermo() []species.Species {
	thermo := make([]species.Species, len(s.Species))
	for i, sp := range s.Species {
		switch {
		case sp.Thermo == nil:
			thermo[i] = species.Constant{}
		case len(sp.Thermo.NASA7) == 7:
			var n species.NASA7
			copy(n.Coeffs[:], sp.Thermo.NASA7)
			n.Tmin, n.Tmax = sp.Thermo.Tmin, sp.Thermo.Tmax
			thermo[i] = n
		default:
			thermo[i] = species.Constant{H298: sp.Thermo.H298, S298: sp.Thermo.S298}
		}
	}
	return thermo
}

// Params expands the scenario's reactions into evaluation parameters,
// resolving species names to indices.
func (s *Scenario) Params() ([]connection.Params, error) {
	index := make(map[string]int, len(s.Species))
	for i, sp := range s.Species {
		index[sp.Name] = i
	}
	resolve := func(names []string, reaction int) ([]int, error) {
		ids := make([]int, 0, 2)
		for _, name := range names {
			id, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("reaction %d: unknown species %q", reaction, name)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	reactants := make([][]int, len(s.Reactions))
	products := make([][]int, len(s.Reactions))
	kf := make([]float64, len(s.Reactions))
	kb := make([]float64, len(s.Reactions))
	for i, r := range s.Reactions {
		var err error
		if reactants[i], err = resolve(r.Reactants, i); err != nil {
			return nil, err
		}
		if products[i], err = resolve(r.Products, i); err != nil {
			return nil, err
		}
		kf[i], kb[i] = r.Kf, r.Kb
	}
	return connection.FromReactions(reactants, products, kf, kb, s.Temperature)
}
