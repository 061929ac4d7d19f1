package handler

import (
	"net/http"
	"os"
	"runtime"
)

// BannerInfo identifies the catalog and tuning a running instance draws from.
// Two instances with different TuningHash values roll different odds.
type BannerInfo struct {
	CatalogVersion string         `json:"catalog_version,omitempty"`
	Spirits        int            `json:"spirits"`
	EligibleByTier map[string]int `json:"eligible_by_tier,omitempty"`
	TuningHash     string         `json:"tuning_hash"`
	BatchSize      uint32         `json:"batch_size"`
}

// VersionInfo is the /version payload
type VersionInfo struct {
	Version   string     `json:"version"`
	GoVersion string     `json:"go_version"`
	GitCommit string     `json:"git_commit,omitempty"`
	Banner    BannerInfo `json:"banner"`
}

// Set via -ldflags "-X .../handler.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
)

// HandleVersion reports the build and the banner loaded at startup
func HandleVersion(banner BannerInfo) http.HandlerFunc {
	info := VersionInfo{
		Version:   resolveVersion(),
		GoVersion: runtime.Version(),
		GitCommit: GitCommit,
		Banner:    banner,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

func resolveVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
