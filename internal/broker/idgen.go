package broker

import "github.com/google/uuid"

// IDGenerator produces unique message identifiers. Any collision-resistant
// scheme satisfies the engine contract.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}
