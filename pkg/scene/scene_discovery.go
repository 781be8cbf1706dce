package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `yaml:"id"`                  // Built-in name, or "file:" plus the file name
	Name        string `yaml:"name"`                // Scene name
	DisplayName string `yaml:"display_name"`        // Display name for listings
	Description string `yaml:"description"`         // Optional description
	Type        string `yaml:"type"`                // "builtin" or "file"
	FilePath    string `yaml:"file_path,omitempty"` // Path to the YAML file (file type only)
}

// List returns the built-in scenes followed by the *.yaml scenes found in
// dir, each group sorted by display name. A missing dir is not an error.
func List(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: titleCase(name),
			Description: builtins[name].description,
			Type:        "builtin",
		})
	}

	files, err := listSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(scenes, files...), nil
}

func listSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("while scanning scenes directory: %w", err)
		}
		paths = append(paths, matches...)
	}

	var scenes []SceneInfo
	for _, path := range paths {
		info := SceneInfo{
			ID:       "file:" + filepath.Base(path),
			Name:     nameFromPath(path),
			Type:     "file",
			FilePath: path,
		}

		d, err := Load(path)
		if err != nil {
			// Listed anyway so the error surfaces when the scene is rendered
			info.Description = "unreadable: " + err.Error()
		} else {
			info.Name = d.Name
			info.Description = d.Description
		}
		info.DisplayName = titleCase(info.Name)
		scenes = append(scenes, info)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// Open resolves a scene reference: a built-in name, a "file:" id from List,
// or a path to a YAML file
func Open(ref, dir string) (*Description, error) {
	if d, ok := Builtin(ref); ok {
		return d, nil
	}

	path := ref
	if name, ok := strings.CutPrefix(ref, "file:"); ok {
		path = filepath.Join(dir, name)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: no built-in scene or file named %q (built-ins: %s)",
			ErrInvalidScene, ref, strings.Join(BuiltinNames(), ", "))
	}
	return Load(path)
}

func nameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
