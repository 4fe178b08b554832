package site

import (
	"sync"
	"time"
)

var zones sync.Map // name -> *time.Location

// LoadZone is time.LoadLocation with the result kept for the life of the
// process. Failures are not cached.
func LoadZone(name string) (*time.Location, error) {
	if loc, ok := zones.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	actual, _ := zones.LoadOrStore(name, loc)
	return actual.(*time.Location), nil
}
