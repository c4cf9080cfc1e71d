// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"encoding/json"
)

// The JSON form of an expression tree is an object per node carrying a
// "type" discriminator. It is a one-way serialization for tooling output.

func (self Grammar) MarshalJSON() ([]byte, error) {
	rules := self.Rules
	if rules == nil {
		rules = []Rule{}
	}
	return json.Marshal(struct {
		URI   string `json:"uri,omitempty"`
		Rules []Rule `json:"rules"`
	}{self.URI, rules})
}

func (self Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string     `json:"name"`
		Expression Expression `json:"expression"`
	}{self.Name, self.Expression})
}

func (self Terminal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{"terminal", self.Text})
}

func (self NonTerminal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{"non-terminal", self.Name})
}

func (self Sequence) MarshalJSON() ([]byte, error) {
	items := self.Items
	if items == nil {
		items = []Expression{}
	}
	return json.Marshal(struct {
		Type  string       `json:"type"`
		Items []Expression `json:"items"`
	}{"sequence", items})
}

func (self PrioritizedChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string       `json:"type"`
		Alternatives []Expression `json:"alternatives"`
	}{"choice", self.Alternatives})
}

func (self ZeroOrMore) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"zero-or-more", self.Inner})
}

func (self OneOrMore) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"one-or-more", self.Inner})
}

func (self Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"option", self.Inner})
}

func (self AndPredicate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"and-predicate", self.Inner})
}

func (self NotPredicate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"not-predicate", self.Inner})
}

func (self AnyTerminal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{"any"})
}

func (self CharacterClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"type"`
		Set  CharSet `json:"set"`
	}{"class", self.Set})
}

func (self Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Start string `json:"start"`
		End   string `json:"end"`
	}{"range", string(self.Start), string(self.End)})
}

func (self Ranges) MarshalJSON() ([]byte, error) {
	sets := []CharSet(self)
	if sets == nil {
		sets = []CharSet{}
	}
	return json.Marshal(struct {
		Type string    `json:"type"`
		Sets []CharSet `json:"sets"`
	}{"ranges", sets})
}
