package opus

// #include "ctl.h"
import "C"

import (
	"fmt"
)

// Error is a status code returned by libopus. The value is the raw code.
type Error int

const (
	// ErrBadArg means one or more arguments were invalid or out of range.
	ErrBadArg = Error(C.OPUS_BAD_ARG)
	// ErrBufferTooSmall means not enough bytes were allocated in the buffer.
	ErrBufferTooSmall = Error(C.OPUS_BUFFER_TOO_SMALL)
	// ErrInternal means libopus detected an internal error.
	ErrInternal = Error(C.OPUS_INTERNAL_ERROR)
	// ErrInvalidPacket means the compressed data was corrupted.
	ErrInvalidPacket = Error(C.OPUS_INVALID_PACKET)
	// ErrUnimplemented means the request number is invalid or unsupported.
	ErrUnimplemented = Error(C.OPUS_UNIMPLEMENTED)
	// ErrInvalidState means the encoder or decoder structure is invalid or
	// already freed.
	ErrInvalidState = Error(C.OPUS_INVALID_STATE)
	// ErrAllocFail means memory allocation failed.
	ErrAllocFail = Error(C.OPUS_ALLOC_FAIL)
)

func (e Error) Error() string {
	return fmt.Sprintf("opus: %s", C.GoString(C.opus_strerror(C.int(e))))
}

// Code returns the raw libopus status code.
func (e Error) Code() int {
	return int(e)
}

func checkStatus(ret C.int) error {
	if ret < C.OPUS_OK {
		return Error(ret)
	}
	return nil
}
