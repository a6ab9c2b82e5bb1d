package interfaces

// Storage is the local persistence layer. Paths are manifest-relative and
// slash-separated; implementations map them under their own root.
type Storage interface {
	// Exists reports whether something already occupies the destination of path
	Exists(path string) (bool, error)

	// EnsureDirectories creates every missing ancestor directory of the destination
	EnsureDirectories(path string) error

	// Write creates or truncates the destination and writes content
	Write(path string, content []byte) error
}
