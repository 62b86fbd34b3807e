package internal

import "errors"

// Every failure surfaces as exactly one of these, wrapped with detail.
// All are terminal: the request is abandoned, nothing is retried.
var (
	ErrResolve         = errors.New("fastget: address resolution failed")
	ErrSocket          = errors.New("fastget: socket creation failed")
	ErrConnect         = errors.New("fastget: connect failed")
	ErrSend            = errors.New("fastget: send failed")
	ErrSendJoin        = errors.New("fastget: background send failed or timed out")
	ErrNotSent         = errors.New("fastget: request was not sent")
	ErrHeader          = errors.New("fastget: invalid extra header")
	ErrEmptyResponse   = errors.New("fastget: empty server response")
	ErrNoHeaderEnd     = errors.New("fastget: no header terminator in response")
	ErrContentLength   = errors.New("fastget: content length mismatch")
	ErrInvalidResponse = errors.New("fastget: invalid response")
)
