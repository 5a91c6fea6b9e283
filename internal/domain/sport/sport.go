package sport

import (
	"fmt"
	"strings"
)

type Sport string

const (
	Soccer     Sport = "Soccer"
	Basketball Sport = "Basketball"
	Hockey     Sport = "Hockey"
	Tennis     Sport = "Tennis"
	Volleyball Sport = "Volleyball"
	Padel      Sport = "Padel"
	Other      Sport = "Other"
)

var all = []Sport{Soccer, Basketball, Hockey, Tennis, Volleyball, Padel, Other}

func All() []Sport {
	return append([]Sport(nil), all...)
}

// Parse matches a sport name case-insensitively.
func Parse(raw string) (Sport, error) {
	value := strings.TrimSpace(raw)
	for _, s := range all {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", raw)
}

// ParseOptional returns an empty Sport for an empty input.
func ParseOptional(raw string) (Sport, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return Parse(raw)
}

func (s Sport) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}
