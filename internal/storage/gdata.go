package storage

import (
	"context"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// stateObject is the gdata object grouping every engine key on disk
const stateObject = "state"

// GdataStore persists engine state to the platform-appropriate local data
// directory via gdata. This is the backend for device-local deployments.
type GdataStore struct {
	manager *gdata.Manager
}

// NewGdataStore opens the local data store for the given app name
func NewGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open local data store: %w", err)
	}
	return &GdataStore{manager: manager}, nil
}

// Get returns the stored bytes for key
func (g *GdataStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !g.manager.ObjectPropExists(stateObject, key) {
		return nil, false, nil
	}
	data, err := g.manager.LoadObjectProp(stateObject, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key
func (g *GdataStore) Set(_ context.Context, key string, value []byte) error {
	if err := g.manager.SaveObjectProp(stateObject, key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Clear removes every engine key
func (g *GdataStore) Clear(_ context.Context) error {
	for _, key := range AllKeys() {
		if !g.manager.ObjectPropExists(stateObject, key) {
			continue
		}
		if err := g.manager.DeleteObjectProp(stateObject, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
