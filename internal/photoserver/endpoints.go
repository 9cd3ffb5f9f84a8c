package photoserver

import (
	"net/url"
	"strings"

	"github.com/mmcdole/albumview/internal/config"
)

// Endpoints builds the URLs of the photos backend
type Endpoints struct {
	baseURL    string
	albumsPath string
	albumPath  string
}

// NewEndpoints creates endpoints from server configuration
func NewEndpoints(cfg config.ServerConfig) Endpoints {
	return Endpoints{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		albumsPath: ensureLeadingSlash(cfg.AlbumsPath),
		albumPath:  ensureLeadingSlash(cfg.AlbumPath),
	}
}

// AlbumsList returns the album list URL
func (e Endpoints) AlbumsList() string {
	return e.baseURL + e.albumsPath
}

// Album returns the URL listing the photos of one album
func (e Endpoints) Album(id string) string {
	prefix := e.albumPath
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return e.baseURL + prefix + url.PathEscape(id)
}

func ensureLeadingSlash(p string) string {
	if p == "" || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
