package main

import (
	"fmt"

	"github.com/oddsline/dicederby/internal/race"
)

// SkillsCmd prints the registered skill names for roster authors.
type SkillsCmd struct{}

func (c *SkillsCmd) Run() error {
	registry := race.NewRegistry()
	for _, name := range registry.Names() {
		fmt.Println(name)
	}
	return nil
}
