package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/engine/texture"
)

// LoadModel loads an OBJ model. Any failure is a *FatalLoadError.
func LoadModel(path string) (*scene.Scene, error) {
	s, err := scene.LoadOBJ(path)
	if err != nil {
		return nil, &FatalLoadError{What: "model", Path: path, Err: err}
	}
	return s, nil
}

// LoadTexture loads the surface texture. An empty path means no texture.
// Any failure is a *FatalLoadError.
func LoadTexture(path string) (*texture.Image, error) {
	if path == "" {
		return nil, nil
	}
	img, err := texture.Load(path)
	if err != nil {
		return nil, &FatalLoadError{What: "texture", Path: path, Err: err}
	}
	return img, nil
}

// ReloadFrom loads the model at path and swaps it in. On failure the current
// model stays and the error is returned.
func (c *Controller) ReloadFrom(path string) error {
	s, err := LoadModel(path)
	if err != nil {
		c.log.Error("model reload failed, keeping current model", zap.String("path", path), zap.Error(err))
		return err
	}
	c.Reload(s)
	return nil
}
