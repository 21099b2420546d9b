package version

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit string

	// Version is the built software's version.
	Version = TMRPCSemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

// TMRPCSemVer is the current version of the tmrpc client library.
// It's the Semantic Version of the software.
const TMRPCSemVer = "0.2.0"
