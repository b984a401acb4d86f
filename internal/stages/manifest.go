package stages

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// DefaultManifestPath is where the manifest is written relative to the output root.
const DefaultManifestPath = "manifest.json"

// ManifestEntry describes one output file.
type ManifestEntry struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	BLAKE3 string `json:"blake3"`
}

// Manifest lists every file of the output tree in path order.
type Manifest struct {
	Files []ManifestEntry `json:"files"`
}

// ManifestStage adds a JSON manifest with the size and BLAKE3 hash of every
// file. It carries no timestamps, so identical trees yield identical manifests.
type ManifestStage struct {
	Path string
}

func (s ManifestStage) Name() pipeline.StageName { return pipeline.StageManifest }

func (s ManifestStage) Apply(tree *vfs.Tree) error {
	path := s.Path
	if path == "" {
		path = DefaultManifestPath
	}

	manifest := BuildManifest(tree)
	content, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to encode manifest").Build()
	}

	if err := tree.Add(&vfs.File{Path: path, Content: append(content, '\n')}); err != nil {
		return foundationerrors.StructureError("manifest collides with an existing file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// BuildManifest hashes every file currently in tree.
func BuildManifest(tree *vfs.Tree) Manifest {
	files := tree.List()
	m := Manifest{Files: make([]ManifestEntry, 0, len(files))}
	for _, f := range files {
		sum := blake3.Sum256(f.Content)
		m.Files = append(m.Files, ManifestEntry{
			Path:   f.Path,
			Size:   len(f.Content),
			BLAKE3: hex.EncodeToString(sum[:]),
		})
	}
	return m
}
