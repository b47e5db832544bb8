package source

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Source is satisfied by any discovery strategy: a plain local directory,
// or a remote-hosted repository that has been prepared into one.
type Source interface {
	Discover() <-chan File
}

// PrepareFunc fetches a remote root (e.g. a code-hosting URL) into a local
// directory and returns that directory's path. It is an external
// collaborator per spec §1 — lmfetch's core never performs network
// fetches itself.
type PrepareFunc func(rawURL string) (localDir string, err error)

// Remote is a Source that *is* a Local source once its PrepareFunc has
// materialized the remote root on disk.
type Remote struct {
	*Local
	OriginURL string
}

// NewRemote prepares rawURL into a local directory via prepare, then wraps
// it as a Local source.
func NewRemote(rawURL string, opts Options, prepare PrepareFunc, log *slog.Logger) (*Remote, error) {
	if prepare == nil {
		return nil, fmt.Errorf("remote source requires a PrepareFunc")
	}
	dir, err := prepare(rawURL)
	if err != nil {
		return nil, fmt.Errorf("prepare remote root %q: %w", rawURL, err)
	}
	opts.Root = dir
	local, err := NewLocal(opts, log)
	if err != nil {
		return nil, err
	}
	return &Remote{Local: local, OriginURL: rawURL}, nil
}

// IsRemoteURL reports whether a root string looks like a code-hosting URL
// rather than a local path.
func IsRemoteURL(root string) bool {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") || strings.HasPrefix(root, "git@") {
		return true
	}
	u, err := url.Parse(root)
	return err == nil && u.Scheme != "" && u.Host != ""
}
