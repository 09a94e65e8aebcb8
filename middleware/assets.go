package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// StaticAssets lists the files under static/ that pages reference with a
// version query string
var StaticAssets = []string{
	"css/style.css",
	"js/site.js",
	"js/courses.js",
	"images/favicon.svg",
}

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	assetVersionsOnce.Do(func() {
		versions := make(map[string]string, len(StaticAssets))
		for _, asset := range StaticAssets {
			version := computeFileHash(filepath.Join(staticDir, asset))
			if version == "" {
				version = "1"
			}
			versions[asset] = version
		}
		assetVersions = versions
		log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash for a static asset, or "1" when
// it was not hashed. ctx is unused; versions are computed once at startup.
func GetAssetVersion(ctx context.Context, asset string) string {
	if version, ok := assetVersions[asset]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the versioned URL for a static asset
func AssetURL(ctx context.Context, asset string) string {
	return "/static/" + asset + "?v=" + GetAssetVersion(ctx, asset)
}
