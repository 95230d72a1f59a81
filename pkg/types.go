package pkg

// Service describes a long running component started by the CLI.
// The serve command runs every service until one of them returns and
// calls Exit on all of them when a signal is received.
type Service interface {
	Run() error
	Exit() error
}
