package model

import "strings"

// Remote describes a working directory that lives on another host.
// Directory-aware commands (new window, split, clone) must issue the
// Login command in the fresh pane before changing directory.
type Remote struct {
	// Login is the command that reaches the host, e.g. "ssh user@box".
	Login string
	// Path is the directory on the remote host.
	Path string
}

// ParseRemote recognizes remote working directories in the two shapes
// editors hand us: the TRAMP form "/ssh:user@host:/path" and the URL
// form "ssh://user@host/path". Local paths return (zero, false).
func ParseRemote(dir string) (Remote, bool) {
	if rest, ok := strings.CutPrefix(dir, "/ssh:"); ok {
		host, path, found := strings.Cut(rest, ":")
		if !found || host == "" {
			return Remote{}, false
		}
		return Remote{Login: "ssh " + host, Path: path}, true
	}
	if rest, ok := strings.CutPrefix(dir, "ssh://"); ok {
		host, path, found := strings.Cut(rest, "/")
		if !found || host == "" {
			return Remote{}, false
		}
		return Remote{Login: "ssh " + host, Path: "/" + path}, true
	}
	return Remote{}, false
}
