package app

import "io/fs"

type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
}

// Revealer opens a directory in the platform file manager.
type Revealer interface {
	Reveal(path string) error
}
