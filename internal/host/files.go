package host

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// WriteFile replaces path on the target with data, owned by root with the given mode.
// The content is streamed on stdin to an elevated install(1), so the write is a
// full overwrite and never a merge.
func WriteFile(ctx context.Context, r Runner, path string, data []byte, mode os.FileMode) error {
	cmd := SudoCmd("install", "-m", octal(mode), "/dev/stdin", path).WithStdin(data)
	if _, err := r.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates dir (and parents) on the target with the given mode.
func MkdirAll(ctx context.Context, r Runner, dir string, mode os.FileMode) error {
	if _, err := r.Run(ctx, SudoCmd("install", "-d", "-m", octal(mode), dir)); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ReadFile reads a world-readable file from the target.
func ReadFile(ctx context.Context, r Runner, path string) ([]byte, error) {
	out, err := r.Run(ctx, Cmd("cat", path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return []byte(out), nil
}

func octal(mode os.FileMode) string {
	return "0" + strconv.FormatUint(uint64(mode.Perm()), 8)
}
