package errors

import (
	"fmt"
)

type ErrCode int

const (
	ErrNoCode           ErrCode = -1
	Success             ErrCode = 0
	ErrFileMissing      ErrCode = 46001
	ErrIO               ErrCode = 46002
	ErrChecksumMismatch ErrCode = 46003
	ErrMagicMismatch    ErrCode = 46004
	ErrNetworkMismatch  ErrCode = 46005
	ErrDeserialize      ErrCode = 46006
	ErrVoteRejected     ErrCode = 47001
	ErrProducerAborted  ErrCode = 47002
	ErrInvalidParams    ErrCode = 42002
)

var ErrMap = map[ErrCode]string{
	Success:             "Success",
	ErrFileMissing:      "File missing",
	ErrIO:               "I/O error",
	ErrChecksumMismatch: "Checksum mismatch",
	ErrMagicMismatch:    "Invalid magic message",
	ErrNetworkMismatch:  "Invalid network magic number",
	ErrDeserialize:      "Invalid format",
	ErrVoteRejected:     "Vote rejected",
	ErrProducerAborted:  "Producer aborted",
	ErrInvalidParams:    "Invalid Params",
}

func (err ErrCode) Error() string {
	switch err {
	case ErrNoCode:
		return "no error code"
	case Success:
		return "not an error"
	case ErrFileMissing:
		return "file is missing"
	case ErrIO:
		return "read or write failure"
	case ErrChecksumMismatch:
		return "checksum mismatch, data corrupted"
	case ErrMagicMismatch:
		return "invalid magic message"
	case ErrNetworkMismatch:
		return "invalid network magic number"
	case ErrDeserialize:
		return "magic is ok but data has invalid format"
	case ErrVoteRejected:
		return "masternode winner vote rejected"
	case ErrProducerAborted:
		return "masternode winner production aborted"
	case ErrInvalidParams:
		return "invalid parameters"
	}

	return fmt.Sprintf("Unknown error? Error code = %d", err)
}
