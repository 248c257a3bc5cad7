package hostctl

import "context"

// Pending is the result of an operation started by one of the Async methods.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func goPending[T any](fn func() (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = fn()
	}()
	return p
}

// Done is closed when the operation has finished.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the operation finishes and returns its result.
func (p *Pending[T]) Wait() (T, error) {
	<-p.done
	return p.value, p.err
}

// Then calls fn with the result once the operation finishes. fn runs on its
// own goroutine.
func (p *Pending[T]) Then(fn func(T, error)) {
	go func() {
		fn(p.Wait())
	}()
}

// GetAsync is the non-blocking form of Get.
func (h *Hosts) GetAsync(ctx context.Context, preserveFormatting bool) *Pending[[]Line] {
	return goPending(func() ([]Line, error) {
		return h.Get(ctx, preserveFormatting)
	})
}

// GetFileAsync is the non-blocking form of GetFile.
func (h *Hosts) GetFileAsync(ctx context.Context, path string, preserveFormatting bool) *Pending[[]Line] {
	return goPending(func() ([]Line, error) {
		return h.GetFile(ctx, path, preserveFormatting)
	})
}

// SetAsync is the non-blocking form of Set.
func (h *Hosts) SetAsync(ctx context.Context, address, hostnames string) *Pending[struct{}] {
	return goPending(func() (struct{}, error) {
		return struct{}{}, h.Set(ctx, address, hostnames)
	})
}

// RemoveAsync is the non-blocking form of Remove.
func (h *Hosts) RemoveAsync(ctx context.Context, address, hostnames string) *Pending[struct{}] {
	return goPending(func() (struct{}, error) {
		return struct{}{}, h.Remove(ctx, address, hostnames)
	})
}
