// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
}

// InitGitRepo creates an empty repository in a fresh temp dir and returns
// its symlink-resolved path, so it compares equal to what git reports as
// the top-level directory. Tests are skipped when git is unavailable.
func InitGitRepo(t testing.TB) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--quiet", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v: %s", err, out)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", dir, err)
	}
	return resolved
}
