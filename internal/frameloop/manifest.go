package frameloop

import (
	"encoding/json"
	"os"
)

// ManifestEntry describes one written frame.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	Image    string  `json:"image"`
	PointerX float64 `json:"pointer_x"`
	PointerY float64 `json:"pointer_y"`
}

// Manifest is the manifest.json document.
type Manifest struct {
	Scene  string          `json:"scene"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes the successful frames of results to path.
func WriteManifest(path, sceneName string, width, height int, results []Result) error {
	m := Manifest{Scene: sceneName, Width: width, Height: height, Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame:    r.Index,
			Image:    r.File,
			PointerX: r.PointerX,
			PointerY: r.PointerY,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
