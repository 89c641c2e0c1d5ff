package ports

import "audiorev/internal/domain"

// DatasetRepository defines filesystem access to a dataset root whose
// subdirectories carry manifest pairs (paths.jsonl + scores.jsonl).
type DatasetRepository interface {
	// Discover returns every subdirectory under root, nested included,
	// that contains a path manifest, in lexicographic path order.
	Discover(root string) ([]string, error)

	// ListSubdirs returns the immediate subdirectories of root in
	// lexicographic order, whether or not they carry manifests yet.
	// Preprocessing works over this set and creates the manifests.
	ListSubdirs(root string) ([]string, error)

	// ReadPair reads one directory's manifest pair into records, pairing
	// line i of the path manifest with line i of the score manifest.
	// Recoverable states are reported as domain.ErrManifestMissing,
	// domain.ErrScoresMissing, or *domain.ManifestMismatchError.
	ReadPair(dir string) ([]domain.AudioRecord, error)

	// Manifest presence checks
	HasPathManifest(dir string) bool
	HasScoreManifest(dir string) bool

	// WritePathManifest enumerates audio files in dir and writes one
	// path manifest line per file. Returns the number of files written.
	WritePathManifest(dir string) (int, error)
}
