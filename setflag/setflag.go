// Package setflag provides a flag.Value that accepts a comma-separated
// subset of a fixed option list.
package setflag

import (
	"fmt"
	"strings"
)

func New(options ...string) *SetFlag {
	sf := &SetFlag{
		options: options,
		chosen:  make(map[string]struct{}, len(options)),
	}
	return sf
}

type SetFlag struct {
	options []string
	chosen  map[string]struct{}
}

// List returns the chosen values in option-list order.
func (sf *SetFlag) List() []string {
	var values []string
	for _, opt := range sf.options {
		if _, ok := sf.chosen[opt]; ok {
			values = append(values, opt)
		}
	}
	return values
}

func (sf *SetFlag) String() string {
	return strings.Join(sf.List(), ",")
}

func (sf *SetFlag) Set(value string) error {
	for _, str := range strings.Split(value, ",") {
		str = strings.TrimSpace(str)
		if str == "" {
			continue
		}
		if !sf.valid(str) {
			return fmt.Errorf("unsupported value '%s' (options: %s)", str, strings.Join(sf.options, ", "))
		}
		sf.chosen[str] = struct{}{}
	}
	return nil
}

func (sf *SetFlag) valid(value string) bool {
	for _, opt := range sf.options {
		if opt == value {
			return true
		}
	}
	return false
}
