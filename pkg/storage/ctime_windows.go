//go:build windows

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

func creationTime(_ string, fi fs.FileInfo) time.Time {
	if d, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds())
	}
	return time.Time{}
}
