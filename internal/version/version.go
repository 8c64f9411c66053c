package version

import "runtime"

var (
	AppName   = "Showdown-ChatBot"
	Version   = "dev"
	BuildDate = ""
	GoVersion = runtime.Version()
)
