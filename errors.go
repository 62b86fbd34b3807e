package fastget

import (
	"github.com/fastget/fastget/internal"
	"github.com/fastget/fastget/internal/gzipbody"
)

// Failure reasons, matchable with errors.Is. All are terminal.
var (
	ErrResolve         = internal.ErrResolve
	ErrSocket          = internal.ErrSocket
	ErrConnect         = internal.ErrConnect
	ErrSend            = internal.ErrSend
	ErrSendJoin        = internal.ErrSendJoin
	ErrNotSent         = internal.ErrNotSent
	ErrHeader          = internal.ErrHeader
	ErrEmptyResponse   = internal.ErrEmptyResponse
	ErrNoHeaderEnd     = internal.ErrNoHeaderEnd
	ErrContentLength   = internal.ErrContentLength
	ErrInvalidResponse = internal.ErrInvalidResponse
	ErrNotGzip         = gzipbody.ErrFormat
	ErrDecompress      = gzipbody.ErrDecompress
)
