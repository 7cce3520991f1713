package alloc

// Instrument wraps an allocator so its activity is exported as Prometheus
// metrics labelled with name. Two instrumented allocators are equal when
// they share a name and their inner allocators are equal.
//
// Example:
//
//	a := alloc.Instrument[string]("sessions", alloc.NewLimited[string](alloc.NewBudget(1<<20)))
//	s := flatset.New[string](flatset.WithAllocator(a))
func Instrument[T any](name string, inner Allocator[T]) Allocator[T] { //nolint:ireturn
	return instrumented[T]{
		name:  name,
		inner: OrDefault(inner),
	}
}

type instrumented[T any] struct {
	name  string
	inner Allocator[T]
}

func (i instrumented[T]) Allocate(n int) ([]T, error) {
	buf, err := i.inner.Allocate(n)
	if err != nil {
		allocationFailuresTotal.WithLabelValues(i.name).Inc()

		return nil, err
	}

	allocationsTotal.WithLabelValues(i.name).Inc()
	allocatedElementsTotal.WithLabelValues(i.name).Add(float64(cap(buf)))
	outstandingElements.WithLabelValues(i.name).Add(float64(cap(buf)))

	return buf, nil
}

func (i instrumented[T]) Deallocate(buf []T) {
	outstandingElements.WithLabelValues(i.name).Sub(float64(cap(buf)))
	i.inner.Deallocate(buf)
}

func (i instrumented[T]) Equals(other Allocator[T]) bool {
	o, ok := other.(instrumented[T])

	return ok && o.name == i.name && i.inner.Equals(o.inner)
}

func (i instrumented[T]) SelectOnCopy() Allocator[T] { //nolint:ireturn
	return instrumented[T]{
		name:  i.name,
		inner: i.inner.SelectOnCopy(),
	}
}

func (i instrumented[T]) PropagateOnMove() bool {
	return i.inner.PropagateOnMove()
}
