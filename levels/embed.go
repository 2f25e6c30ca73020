package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed *.json
var LevelsFS embed.FS

// Demo is the name of the level bundled with the binary.
const Demo = "demo.json"

// LoadLevelFromFS loads an embedded level by file name.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// LoadLevel loads a level from disk, falling back to the embedded levels
// when path does not exist.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadLevelFromFS(path)
		}
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}
