// Package logging builds the zap loggers shared by the server and the
// sighting feed.
package logging

import (
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/config"
)

// New returns a console logger in development and a JSON logger elsewhere,
// at the given level.
func New(env, level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if config.IsDevEnv(env) {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc.Level = lvl
	return zc.Build()
}
