package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for document keys.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate random uuid: %w", err)
	}

	return v.String(), nil
}

// namespace for name-based ids derived inside this service.
var namespace = uuid.MustParse("6f1c2b52-8a8e-4c59-9b6e-2f0a3c7d9e41")

// Derive returns a stable UUIDv5 for the given name. Equal names always map
// to the same id.
func Derive(name string) string {
	return uuid.NewSHA1(namespace, []byte(name)).String()
}
