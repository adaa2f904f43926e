package version

// Version is the current version of argo-quant, set at build time with
// -ldflags "-X github.com/rxtech-lab/argo-quant/internal/version.Version=1.2.3".
var Version = "main"

// GetVersion returns the current version.
func GetVersion() string {
	return Version
}
