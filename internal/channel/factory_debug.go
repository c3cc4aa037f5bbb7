//go:build debug

package channel

// New creates a new channel.
// In debug builds, this returns an unbuffered channel (ignores size) so
// producers run in lockstep with the bridge and ordering bugs surface.
func New[T any](size int) Channel[T] {
	return NewUnbuffered[T]()
}
