package ui

import (
	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/export"
)

// chatReplyMsg carries the outcome of a /chat request.
type chatReplyMsg struct {
	reply *backend.Reply
	err   error
}

// stateDownloadedMsg carries the outcome of a state download.
type stateDownloadedMsg struct {
	result *export.Result
	err    error
}
