package container

// future holds the result of an in-flight service creation. Resolutions
// that lose the race wait on done instead of creating a second instance.
type future struct {
	val  any
	err  error
	done chan struct{}
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) setResult(val any, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

func (f *future) result() (any, error) {
	<-f.done
	return f.val, f.err
}
