// C shared library surface for the render engine, built with
//
//	go build -buildmode=c-shared -o libxrayproj.so ./cmd/libxrayproj
//
// so Python and other runtimes can drive renders through ctypes. The
// whole contract is two functions passing JSON strings.
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"

	"github.com/lukaszgryglicki/xrayproj/internal/xrayproj"
)

// RenderProjections renders the projections described by a JSON
// request and returns a JSON result. The returned string is allocated
// with C.malloc and must be released with FreeString.
//
//export RenderProjections
func RenderProjections(jsonParams *C.char) *C.char {
	return C.CString(xrayproj.RenderJSON(C.GoString(jsonParams)))
}

// FreeString releases a string returned by RenderProjections.
//
//export FreeString
func FreeString(str *C.char) {
	C.free(unsafe.Pointer(str))
}

func main() {}
