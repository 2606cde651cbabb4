package system

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Clock struct {
	location *time.Location
}

// NewClock loads the named IANA zone. An empty name uses the process local zone.
func NewClock(tzName string) (*Clock, error) {
	if tzName == "" {
		return &Clock{location: time.Local}, nil
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tzName, err)
	}

	return &Clock{location: loc}, nil
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.location).Truncate(time.Second)
}

func (c *Clock) Location() *time.Location {
	return c.location
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
