package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Percent is an uncertainty percentage. Plan files in the wild carry these
// both as numbers and as quoted strings, so decoding accepts either form.
type Percent float64

// Float64 returns the percentage as a plain float64.
func (p Percent) Float64() float64 {
	return float64(p)
}

// UnmarshalJSON decodes a Percent from a JSON number or string.
func (p *Percent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q: %w", s, err)
		}
		*p = Percent(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

// UnmarshalYAML decodes a Percent from a YAML number or string.
func (p *Percent) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err == nil {
		*p = Percent(v)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid percent %q: %w", s, err)
	}
	*p = Percent(v)
	return nil
}
