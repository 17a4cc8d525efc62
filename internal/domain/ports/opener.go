package ports

// FileOpener opens a generated file with the platform's default application
type FileOpener interface {
	// Open opens path; a no-op when disabled
	Open(path string, disabled bool) error

	// Command returns the opener command for the current platform
	Command() (string, error)
}
