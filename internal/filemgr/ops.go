package filemgr

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/termide/termide/internal/apperrors"
)

// Batch deletes take their trash directory as a parameter, mirroring the
// teacher's "archive instead of destroy" caution in internal/archiver:
// Delete moves entries into trashDir when it is non-empty and removes them
// permanently when it is empty.

// Copy copies names (relative to the current directory) into destDir.
// Directories are copied recursively. Confirmation is the caller's
// (internal/modal's) responsibility; Copy performs the operation as given.
func (m *Manager) Copy(names []string, destDir string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	for _, name := range names {
		src := filepath.Join(cwd, name)
		dst := filepath.Join(destDir, name)
		if err := copyPath(src, dst); err != nil {
			return apperrors.New(apperrors.KindIO, err)
		}
	}
	return m.Refresh()
}

// Move relocates names into destDir (rename within the same filesystem,
// falling back to copy+delete across filesystems).
func (m *Manager) Move(names []string, destDir string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	for _, name := range names {
		src := filepath.Join(cwd, name)
		dst := filepath.Join(destDir, name)
		if err := os.Rename(src, dst); err != nil {
			if err := copyPath(src, dst); err != nil {
				return apperrors.New(apperrors.KindIO, err)
			}
			if err := os.RemoveAll(src); err != nil {
				return apperrors.New(apperrors.KindIO, err)
			}
		}
	}
	return m.Refresh()
}

// Delete removes names, moving them into trashDir if non-empty, or
// permanently with os.RemoveAll otherwise (spec §4.8's
// "default to the trash if available or permanent otherwise" rule — the
// configured preference is resolved by the caller into trashDir or "").
func (m *Manager) Delete(names []string, trashDir string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	for _, name := range names {
		src := filepath.Join(cwd, name)
		if trashDir != "" {
			if err := os.MkdirAll(trashDir, 0o755); err != nil {
				return apperrors.New(apperrors.KindIO, err)
			}
			dst := filepath.Join(trashDir, uniqueTrashName(trashDir, name))
			if err := os.Rename(src, dst); err != nil {
				return apperrors.New(apperrors.KindIO, err)
			}
			continue
		}
		if err := os.RemoveAll(src); err != nil {
			return apperrors.New(apperrors.KindIO, err)
		}
	}
	m.ClearSelection()
	return m.Refresh()
}

func uniqueTrashName(trashDir, name string) string {
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(trashDir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = strings.TrimSuffix(name, filepath.Ext(name)) + "." + strconv.Itoa(i) + filepath.Ext(name)
	}
}

// CreateFile creates an empty file named name in the current directory.
func (m *Manager) CreateFile(name string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(cwd, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.New(apperrors.KindIO, err)
	}
	f.Close()
	return m.Refresh()
}

// CreateDir creates a directory named name in the current directory.
func (m *Manager) CreateDir(name string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	if err := os.Mkdir(filepath.Join(cwd, name), 0o755); err != nil {
		return apperrors.New(apperrors.KindIO, err)
	}
	return m.Refresh()
}

// Rename renames oldName to newName in the current directory.
func (m *Manager) Rename(oldName, newName string) error {
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	if err := os.Rename(filepath.Join(cwd, oldName), filepath.Join(cwd, newName)); err != nil {
		return apperrors.New(apperrors.KindIO, err)
	}
	return m.Refresh()
}

// PatternRename applies a find/replace regular expression across all
// selected names, renaming each in place (spec §4.8 "pattern rename").
func (m *Manager) PatternRename(names []string, find, replace string) error {
	re, err := regexp.Compile(find)
	if err != nil {
		return apperrors.New(apperrors.KindParse, err)
	}
	m.mu.Lock()
	cwd := m.cwd
	m.mu.Unlock()

	for _, name := range names {
		newName := re.ReplaceAllString(name, replace)
		if newName == name {
			continue
		}
		if err := os.Rename(filepath.Join(cwd, name), filepath.Join(cwd, newName)); err != nil {
			return apperrors.New(apperrors.KindIO, err)
		}
	}
	return m.Refresh()
}

func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dst, info.Mode())
	}
	return copyFile(src, dst, info.Mode())
}

func copyDir(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(dst, mode); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		s := filepath.Join(src, e.Name())
		d := filepath.Join(dst, e.Name())
		if err := copyPath(s, d); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
