package lexer

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Wildcard is the transition key consulted when a state has no entry for
// the current character class.
const Wildcard = "ANY"

// ClassWhitespace names the character class skipped between tokens.
const ClassWhitespace = "WHITESPACE"

// classRange is the character range expanded into the classification table.
const classRange = 128

//go:embed rules/dfa.json
var defaultRules []byte

type CharClass struct {
	Name    string
	Spec    string
	pattern *regexp.Regexp
}

// RuleSet is a loaded lexical configuration. It is immutable after loading.
type RuleSet struct {
	Classes      []CharClass
	InitialState string
	FinalStates  map[string]Kind
	Transition   map[string]map[string]string
	Lookup       map[string]Kind

	classOf [classRange]string
}

// ConfigError reports an unusable rule file.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lexical rules %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type ruleFile struct {
	CharClasses  yaml.Node                    `yaml:"char_classes"`
	InitialState *string                      `yaml:"initial_state"`
	FinalStates  map[string]string            `yaml:"final_states"`
	Transition   map[string]map[string]string `yaml:"transition"`
	Lookup       map[string]string            `yaml:"lookup"`
}

// DefaultRules returns the rule set bundled with the lexer. The set is
// decoded once and shared; callers must not modify it.
func DefaultRules() *RuleSet {
	return bundledRules()
}

var bundledRules = sync.OnceValue(func() *RuleSet {
	rs, err := ParseRules(defaultRules, "bundled")
	if err != nil {
		panic(err)
	}
	return rs
})

// LoadRules reads a JSON or YAML rule file. An empty path selects the
// bundled rules.
func LoadRules(path string) (*RuleSet, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	return ParseRules(data, path)
}

// ParseRules decodes a rule description. source is only used in errors.
func ParseRules(data []byte, source string) (*RuleSet, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	if rf.InitialState == nil {
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("missing 'initial_state'")}
	}
	if rf.FinalStates == nil {
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("missing 'final_states'")}
	}
	if rf.Transition == nil {
		return nil, &ConfigError{Source: source, Err: fmt.Errorf("missing 'transition'")}
	}

	rs := &RuleSet{
		InitialState: *rf.InitialState,
		FinalStates:  make(map[string]Kind, len(rf.FinalStates)),
		Transition:   rf.Transition,
		Lookup:       make(map[string]Kind, len(rf.Lookup)),
	}

	classes, err := decodeClasses(&rf.CharClasses)
	if err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	rs.Classes = classes

	for state, name := range rf.FinalStates {
		kind := Kind(name)
		if !kind.IsKnown() {
			return nil, &ConfigError{Source: source, Err: fmt.Errorf("final state %q: unknown token kind %q", state, name)}
		}
		rs.FinalStates[state] = kind
	}
	for lexeme, name := range rf.Lookup {
		kind := Kind(name)
		if !kind.IsKnown() {
			return nil, &ConfigError{Source: source, Err: fmt.Errorf("lookup %q: unknown token kind %q", lexeme, name)}
		}
		rs.Lookup[lexeme] = kind
	}

	rs.expand()
	log.Debugf("loaded rules from %s: %d classes, %d states, %d reserved words",
		source, len(rs.Classes), len(rs.Transition), len(rs.Lookup))
	return rs, nil
}

// decodeClasses reads the char_classes mapping keeping its declaration order.
func decodeClasses(node *yaml.Node) ([]CharClass, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("'char_classes' must be a mapping")
	}
	var classes []CharClass
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		spec := node.Content[i+1].Value
		if name == Wildcard {
			return nil, fmt.Errorf("character class may not be named %q", Wildcard)
		}
		pattern, err := compileClass(spec)
		if err != nil {
			return nil, fmt.Errorf("character class %q: %w", name, err)
		}
		classes = append(classes, CharClass{Name: name, Spec: spec, pattern: pattern})
	}
	return classes, nil
}

var explicitSet = regexp.MustCompile(`^[A-Za-z0-9_\-\[\]\\ \t\n]+$`)

// compileClass turns a class spec into a pattern matching exactly one
// character. Specs made only of letters, digits, '_', '-', brackets,
// backslash escapes and blanks are character sets; anything else is a
// regular expression.
func compileClass(spec string) (*regexp.Regexp, error) {
	var expr string
	switch {
	case len(spec) >= 2 && spec[0] == '^' && spec[len(spec)-1] == '$':
		expr = spec
	case explicitSet.MatchString(spec):
		expr = "^[" + spec + "]$"
	default:
		expr = "^(?:" + spec + ")$"
	}
	return regexp.Compile(expr)
}

func (rs *RuleSet) expand() {
	for code := 0; code < classRange; code++ {
		ch := string(rune(code))
		for _, class := range rs.Classes {
			if class.pattern.MatchString(ch) {
				rs.classOf[code] = class.Name
				break
			}
		}
	}
}

// Classify returns the class name of ch. Characters not covered by any
// class, including everything outside the ASCII range, are their own class.
func (rs *RuleSet) Classify(ch rune) string {
	if ch >= 0 && ch < classRange && rs.classOf[ch] != "" {
		return rs.classOf[ch]
	}
	return string(ch)
}

// Next returns the state reached from state on class, falling back to the
// wildcard transition.
func (rs *RuleSet) Next(state, class string) (string, bool) {
	row, ok := rs.Transition[state]
	if !ok {
		return "", false
	}
	if next, ok := row[class]; ok {
		return next, true
	}
	next, ok := row[Wildcard]
	return next, ok
}

// Accepting returns the token kind of a final state.
func (rs *RuleSet) Accepting(state string) (Kind, bool) {
	kind, ok := rs.FinalStates[state]
	return kind, ok
}

// Reserved returns the kind a lowercase lexeme is reclassified to.
func (rs *RuleSet) Reserved(lexeme string) (Kind, bool) {
	kind, ok := rs.Lookup[lexeme]
	return kind, ok
}

// Classification lists the expanded character table, one entry per
// printable ASCII character that belongs to a named class.
func (rs *RuleSet) Classification() []ClassifiedChar {
	var out []ClassifiedChar
	for code := 0; code < classRange; code++ {
		if rs.classOf[code] != "" {
			out = append(out, ClassifiedChar{Char: rune(code), Class: rs.classOf[code]})
		}
	}
	return out
}

type ClassifiedChar struct {
	Char  rune
	Class string
}

// ReservedWords returns the lookup table's lexemes in sorted order.
func (rs *RuleSet) ReservedWords() []string {
	words := make([]string, 0, len(rs.Lookup))
	for w := range rs.Lookup {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
