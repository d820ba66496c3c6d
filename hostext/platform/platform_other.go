//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package platform

import "os"

func uname() Info {
	i := goInfo()
	i.Node, _ = os.Hostname()
	return i
}
