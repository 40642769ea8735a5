package fsm

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the declarative description of a machine
type Config struct {
	Initial     StateID                `yaml:"initial,omitempty" mapstructure:"initial"`
	States      StateDescriptors       `yaml:"states,omitempty" mapstructure:"states"`
	Transitions []TransitionDescriptor `yaml:"transitions,omitempty" mapstructure:"transitions"`
	Chainable   bool                   `yaml:"chainable,omitempty" mapstructure:"chainable"`
	Wildcard    string                 `yaml:"wildcard,omitempty" mapstructure:"wildcard"`

	// Target receives the machine after it is built (see Attacher).
	Target any    `yaml:"-" mapstructure:"-"`
	Safe   bool   `yaml:"safe,omitempty" mapstructure:"safe"`
	Alias  string `yaml:"fsmAlias,omitempty" mapstructure:"fsmAlias"`

	machine *Machine
}

// Machine returns the machine built from this config, or nil if New has not been called
func (c *Config) Machine() *Machine {
	return c.machine
}

// Validate checks the config without building a machine
func (c *Config) Validate() error {
	if _, err := ParseWildcardMode(c.Wildcard); err != nil {
		return err
	}

	known := make(map[StateID]bool)
	for i, s := range c.States {
		if s.Name == "" {
			return fmt.Errorf("states[%d]: %w", i, ErrEmptyName)
		}
		known[s.Name] = true
	}

	for i, t := range c.Transitions {
		if t.Name == "" {
			return fmt.Errorf("transitions[%d]: name: %w", i, ErrEmptyName)
		}
		if t.To == "" {
			return fmt.Errorf("transitions[%d] %q: to: %w", i, t.Name, ErrEmptyName)
		}
		for _, from := range t.origins() {
			if from == "" {
				return fmt.Errorf("transitions[%d] %q: from: %w", i, t.Name, ErrEmptyName)
			}
			known[from] = true
		}
		known[t.To] = true
	}

	if c.Initial != "" && !known[c.Initial] {
		return fmt.Errorf("initial state: %w", &StateError{State: c.Initial})
	}
	return nil
}

// ParseConfig decodes a YAML machine description
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads a YAML machine description from r
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// DecodeConfig decodes a generic map, e.g. from JSON or another config
// system. States and from lists accept a bare name in place of a list element.
func DecodeConfig(input map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stateDescriptorsHook,
			stateDescriptorHook,
			stateListHook,
		),
		Result: &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

var (
	stateDescriptorsType = reflect.TypeOf(StateDescriptors{})
	stateDescriptorType  = reflect.TypeOf(StateDescriptor{})
	stateListType        = reflect.TypeOf(StateList{})
)

// stateDescriptorsHook wraps a lone name or mapping into a one-element list
func stateDescriptorsHook(from, to reflect.Type, data any) (any, error) {
	if to != stateDescriptorsType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String, reflect.Map:
		return []any{data}, nil
	default:
		return data, nil
	}
}

func stateDescriptorHook(from, to reflect.Type, data any) (any, error) {
	if to != stateDescriptorType || from.Kind() != reflect.String {
		return data, nil
	}
	return StateDescriptor{Name: StateID(reflect.ValueOf(data).String())}, nil
}

func stateListHook(from, to reflect.Type, data any) (any, error) {
	if to != stateListType || from.Kind() != reflect.String {
		return data, nil
	}
	return StateList{StateID(reflect.ValueOf(data).String())}, nil
}

// UnmarshalYAML accepts either a scalar name or a mapping with a name key
func (d *StateDescriptor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		d.Name = StateID(value.Value)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name StateID `yaml:"name"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		d.Name = raw.Name
		return nil
	default:
		return fmt.Errorf("line %d: state must be a name or a mapping", value.Line)
	}
}

// UnmarshalYAML accepts a single state (name or mapping) or a sequence of them
func (l *StateDescriptors) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		var d StateDescriptor
		if err := d.UnmarshalYAML(value); err != nil {
			return err
		}
		*l = StateDescriptors{d}
		return nil
	case yaml.SequenceNode:
		var descs []StateDescriptor
		if err := value.Decode(&descs); err != nil {
			return err
		}
		*l = descs
		return nil
	default:
		return fmt.Errorf("line %d: states must be a state or a list of states", value.Line)
	}
}

// UnmarshalYAML accepts either a scalar name or a sequence of names
func (l *StateList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StateList{StateID(value.Value)}
		return nil
	case yaml.SequenceNode:
		var names []StateID
		if err := value.Decode(&names); err != nil {
			return err
		}
		*l = names
		return nil
	default:
		return errors.New("from must be a name or a list of names")
	}
}
