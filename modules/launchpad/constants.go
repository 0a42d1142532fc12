package launchpad

const (
	Version = "v0.1.0"
)
