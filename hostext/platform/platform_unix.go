//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package platform

import (
	"bytes"

	"golang.org/x/sys/unix"
)

func uname() Info {
	var u unix.Utsname
	if unix.Uname(&u) != nil {
		// If uname failed, we don't have anything else to try.
		return goInfo()
	}
	str := func(b []byte) string {
		return string(bytes.TrimRight(b, "\x00"))
	}
	return Info{
		System:  str(u.Sysname[:]),
		Node:    str(u.Nodename[:]),
		Release: str(u.Release[:]),
		Version: str(u.Version[:]),
		Machine: str(u.Machine[:]),
	}
}
