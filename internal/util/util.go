/*
Package util includes file and path helpers shared by the commands.
*/
package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading "~" with the current user's home directory.
// Other paths, including "~name/...", are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	return filepath.Join(usr.HomeDir, strings.TrimPrefix(path, "~"))
}

// AbsPath returns absolute path after expanding '~' to user's home dir
// Use everywhere in place of filepath.Abs()
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}

// statKind stats path and checks that it is the expected kind. A missing
// path is not an error.
func statKind(path string, want func(os.FileMode) bool, kind string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !want(info.Mode()) {
		return false, fmt.Errorf("%s not a %s", path, kind)
	}
	return true, nil
}

// FileExists reports whether a regular file exists at path. It returns an
// error if path is something else, e.g., a directory.
func FileExists(path string) (bool, error) {
	return statKind(path, os.FileMode.IsRegular, "file")
}

// DirectoryExists reports whether a directory exists at path. It returns an
// error if path is something else, e.g., a regular file.
func DirectoryExists(path string) (bool, error) {
	return statKind(path, os.FileMode.IsDir, "directory")
}

// FileOrDirectoryExists reports whether anything exists at path.
func FileOrDirectoryExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CreateDirectoryIfNotExists creates dir and its parents unless it already exists.
func CreateDirectoryIfNotExists(dir string, perm os.FileMode) error {
	if FileOrDirectoryExists(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create directory: '%s', error: '%s'", dir, err.Error())
	}
	return nil
}
