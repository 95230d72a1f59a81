package pkg

// Version and BuildDate are overridden at link time with -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)
