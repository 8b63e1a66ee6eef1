package style

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skylight/internal/twilight"
)

// ErrUnknownPhase is returned when a preset file names a phase that does not exist.
var ErrUnknownPhase = errors.New("style: unknown phase")

// transitionKey is the per-preset field holding the transition character.
const transitionKey = "transitionType"

// LoadPresets decodes a preset document. The document maps phase names to
// attribute tables, e.g.
//
//	sunrise:
//	  transitionType: fast
//	  sky-color: "#f7dc6f"
//	  light-intensity: 0.6
//
// JSON documents of the same shape are accepted too. Phases that are not
// listed are disabled.
func LoadPresets(r io.Reader) (PresetSet, error) {
	var doc map[string]map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return PresetSet{}, nil
		}
		return nil, fmt.Errorf("style: decode presets: %w", err)
	}

	set := make(PresetSet, len(doc))
	for name, table := range doc {
		key, err := twilight.ParsePhaseKey(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
		}
		p, err := presetFromTable(table)
		if err != nil {
			return nil, fmt.Errorf("style: phase %s: %w", name, err)
		}
		set[key] = p
	}
	return set, nil
}

// LoadPresetsFile reads presets from path.
func LoadPresetsFile(path string) (PresetSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := LoadPresets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func presetFromTable(table map[string]any) (Preset, error) {
	p := Preset{Attributes: make(Attributes, len(table))}
	for name, raw := range table {
		if name == transitionKey {
			s, ok := raw.(string)
			if !ok {
				return Preset{}, fmt.Errorf("%s must be a string, got %T", transitionKey, raw)
			}
			c, err := twilight.ParseCharacter(s)
			if err != nil {
				return Preset{}, err
			}
			p.Transition = c
			continue
		}
		v, err := valueFromAny(raw)
		if err != nil {
			return Preset{}, fmt.Errorf("%s: %w", name, err)
		}
		p.Attributes[name] = v
	}
	return p, nil
}
