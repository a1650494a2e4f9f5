//go:build darwin

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

func creationTime(_ string, fi fs.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Unix())
	}
	return time.Time{}
}
