package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/mathedit/internal/engine"
)

// Default limits for script execution.
const (
	DefaultTimeout       = 5 * time.Second
	DefaultCallStackSize = 256
)

// Runner executes scripts against one engine.
type Runner struct {
	mu sync.Mutex

	L   *lua.LState
	eng *engine.Engine

	// Configuration
	timeout       time.Duration
	callStackSize int
	out           io.Writer
	logger        *zap.Logger

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the time budget of a single run. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithCallStackSize limits the Lua call depth.
func WithCallStackSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.callStackSize = n
		}
	}
}

// WithOutput sends print output to w instead of the logger.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a runner bound to eng.
func New(eng *engine.Engine, opts ...Option) *Runner {
	r := &Runner{
		eng:           eng,
		timeout:       DefaultTimeout,
		callStackSize: DefaultCallStackSize,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reset()
	return r
}

// reset replaces the Lua state with a fresh one.
func (r *Runner) reset() {
	if r.L != nil {
		r.L.Close()
	}
	r.L = newSandbox(r.callStackSize)
	installPrint(r.L, r.out, r.logger)
	(&formulaModule{eng: r.eng}).register(r.L)
}

// Run executes code as one undo unit named name. If the script fails its
// edits are reverted.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	err := r.eng.Transaction(name, func() error {
		return r.do(ctx, code)
	})
	if err != nil && ctx.Err() != nil {
		// An interrupted state may be left mid-call.
		r.reset()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%s: %w", name, ErrTimeout)
		} else {
			err = fmt.Errorf("%s: %w", name, ctx.Err())
		}
	}

	r.logger.Debug("script finished",
		zap.String("name", name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	return err
}

// do runs code with panic recovery.
func (r *Runner) do(ctx context.Context, code string) (err error) {
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	return r.L.DoString(code)
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(data))
}

// Close releases the Lua state. Further runs return ErrRunnerClosed.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
