package client

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

// OverrideRule redirects payments made from a shared family account to one
// named family member. It is a billing exception, not a relationship.
type OverrideRule struct {
	Email              string `yaml:"email"`
	Surname            string `yaml:"surname"`
	PreferredFirstName string `yaml:"preferred_first_name"`
}

// OverrideTable is a finite, explicit email -> rule lookup. It is injected
// into the membership attribution path only.
type OverrideTable struct {
	rules map[string]OverrideRule
}

func NewOverrideTable(rules ...OverrideRule) OverrideTable {
	t := OverrideTable{rules: make(map[string]OverrideRule, len(rules))}
	for _, r := range rules {
		key := strings.ToLower(strings.TrimSpace(r.Email))
		if key == "" || strings.TrimSpace(r.Surname) == "" {
			continue
		}
		r.Surname = strings.ToLower(strings.TrimSpace(r.Surname))
		r.PreferredFirstName = strings.TrimSpace(r.PreferredFirstName)
		t.rules[key] = r
	}
	return t
}

func (t OverrideTable) Len() int {
	return len(t.rules)
}

func (t OverrideTable) Resolve(email string) (OverrideRule, bool) {
	r, ok := t.rules[strings.ToLower(strings.TrimSpace(email))]
	return r, ok
}

// ResolveSurname returns the lower-cased target surname for email.
func (t OverrideTable) ResolveSurname(email string) (string, bool) {
	r, ok := t.Resolve(email)
	if !ok {
		return "", false
	}
	return r.Surname, true
}

// Pick chooses the override target among clients. The preferred first name
// wins regardless of creation order; without it the first surname match in
// store order is used.
func Pick(rule OverrideRule, clients []models.Client) *models.Client {
	var first *models.Client
	for i := range clients {
		c := clients[i]
		if strings.ToLower(strings.TrimSpace(c.OwnerLastName)) != rule.Surname {
			continue
		}
		if rule.PreferredFirstName != "" && strings.EqualFold(strings.TrimSpace(c.OwnerFirstName), rule.PreferredFirstName) {
			return &c
		}
		if first == nil {
			first = &c
		}
	}
	return first
}

type overrideFile struct {
	Overrides []OverrideRule `yaml:"overrides"`
}

// LoadOverrides reads a YAML file of the form
//
//	overrides:
//	  - email: family@example.com
//	    surname: smith
//	    preferred_first_name: Jo
func LoadOverrides(path string) (OverrideTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return OverrideTable{}, fmt.Errorf("read overrides: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return OverrideTable{}, fmt.Errorf("parse overrides: %w", err)
	}

	for i, r := range f.Overrides {
		if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Surname) == "" {
			return OverrideTable{}, fmt.Errorf("override %d: email and surname are required", i)
		}
	}

	return NewOverrideTable(f.Overrides...), nil
}
