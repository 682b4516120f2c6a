package version

// gitCommit is set at build time with
// -ldflags "-X github.com/composio/docsite/pkg/version.gitCommit=$(git rev-parse HEAD)"
var gitCommit = "unknown"

type Info struct {
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
}

func Get() Info {
	return Info{GitCommit: gitCommit}
}
