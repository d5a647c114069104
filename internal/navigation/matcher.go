// Package navigation derives the sidebar menu from the current URL path.
package navigation

import (
	"regexp"
	"sync"
)

const (
	ChatsPrefix = "/admin/chats"
	SysPrefix   = "/admin/sys"
)

var (
	patternsMu sync.RWMutex
	patterns   = make(map[string]*regexp.Regexp)
	sysRoot    = regexp.MustCompile(`^/admin/sys(/|$)`)
)

func compile(expr string) *regexp.Regexp {
	patternsMu.RLock()
	re, ok := patterns[expr]
	patternsMu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(expr)
	patternsMu.Lock()
	patterns[expr] = re
	patternsMu.Unlock()
	return re
}

// IsSelect reports whether path is a page of a chat with a negative id.
// The match is a prefix match: deeper paths under the page are selected too.
func IsSelect(page, path string) bool {
	return compile(`^/admin/chats/-\d+/` + regexp.QuoteMeta(page)).MatchString(path)
}

// IsSysLink reports whether path belongs to the system menu. With an empty
// page any system path matches.
func IsSysLink(path, page string) bool {
	if page == "" {
		return sysRoot.MatchString(path)
	}
	return compile(`^/admin/sys/` + regexp.QuoteMeta(page)).MatchString(path)
}
