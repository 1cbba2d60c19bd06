package plotting

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Viewer presents a figure and returns once the operator has dismissed it.
type Viewer interface {
	Show(ctx context.Context, fig *Figure) error
}

// FileViewer writes each figure as a PNG file in its directory. With a
// prompt reader it then blocks until a line is read from it.
type FileViewer struct {
	dir     string
	prompt  *bufio.Reader
	out     io.Writer
	logger  *zap.Logger
	shown   int
	written []string
	pending chan error
}

// NewFileViewer creates a FileViewer. prompt may be nil for
// non-interactive use; out receives the dismissal prompt.
func NewFileViewer(dir string, prompt io.Reader, out io.Writer, logger *zap.Logger) *FileViewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	v := &FileViewer{dir: dir, out: out, logger: logger}
	if prompt != nil {
		v.prompt = bufio.NewReader(prompt)
	}
	return v
}

// Show writes the figure and waits for dismissal.
func (v *FileViewer) Show(ctx context.Context, fig *Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return fmt.Errorf("create figure dir: %w", err)
	}

	v.shown++
	path := filepath.Join(v.dir, fmt.Sprintf("%02d-%s.png", v.shown, fig.Name))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	if _, err := fig.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", fig.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close figure: %w", err)
	}
	v.written = append(v.written, path)
	v.logger.Info("figure written", zap.String("figure", fig.Name), zap.String("path", path))

	if v.prompt == nil {
		return nil
	}
	fmt.Fprintf(v.out, "%s: press Enter to dismiss\n", path)
	return v.waitDismiss(ctx)
}

// waitDismiss blocks until a line is read or ctx is done. A read abandoned
// by cancellation stays pending and is picked up by the next wait, so the
// prompt never has two concurrent readers.
func (v *FileViewer) waitDismiss(ctx context.Context) error {
	if v.pending == nil {
		done := make(chan error, 1)
		go func() {
			_, err := v.prompt.ReadString('\n')
			done <- err
		}()
		v.pending = done
	}

	select {
	case err := <-v.pending:
		v.pending = nil
		if err != nil && err != io.EOF {
			return fmt.Errorf("wait for dismissal: %w", err)
		}
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Written returns the paths of every figure shown so far.
func (v *FileViewer) Written() []string {
	out := make([]string, len(v.written))
	copy(out, v.written)
	return out
}
