// Package opus binds the libopus encoder, decoder and multistream APIs
// through cgo.
//
// libopus exposes its tunables through the variadic *_ctl entry points and
// request macros such as OPUS_SET_BITRATE(x), neither of which cgo can call.
// ctl.h wraps every supported request in a fixed-arity static function and
// the handle types in this package expose those as plain methods. Status
// codes are never reinterpreted: a method fails with Error holding the exact
// code libopus returned.
//
// Handles are not safe for concurrent use.
package opus

// #cgo pkg-config: opus
// #include "ctl.h"
import "C"

// Version returns the libopus version string, e.g. "libopus 1.4".
func Version() string {
	return C.GoString(C.opus_get_version_string())
}

func boolToInt32(v bool) C.opus_int32 {
	if v {
		return 1
	}
	return 0
}
