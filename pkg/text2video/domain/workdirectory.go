package domain

// WorkDirectoryProvider creates fresh scratch directories (for intermediate frames etc.). The caller removes them.
type WorkDirectoryProvider interface {
	CreateWorkDirectory() (string, error)
}
