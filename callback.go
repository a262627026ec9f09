package gridplot

import "slices"

// A Subscription identifies one registered callback. It is returned when
// subscribing and passed back to unsubscribe. The zero Subscription is
// never handed out.
type Subscription uint64

// CallbackSet is an ordered set of callbacks of type F keyed by
// Subscription. Callbacks are invoked in subscription order.
// The zero value is ready to use.
type CallbackSet[F any] struct {
	next  Subscription
	order []Subscription
	funcs map[Subscription]F
}

// Add registers f and returns its subscription.
func (cs *CallbackSet[F]) Add(f F) Subscription {
	if cs.funcs == nil {
		cs.funcs = make(map[Subscription]F)
	}
	cs.next++
	cs.funcs[cs.next] = f
	cs.order = append(cs.order, cs.next)
	return cs.next
}

// Remove unregisters the callback for s. Unknown subscriptions are ignored.
func (cs *CallbackSet[F]) Remove(s Subscription) {
	if _, ok := cs.funcs[s]; !ok {
		return
	}
	delete(cs.funcs, s)
	for i, o := range cs.order {
		if o == s {
			cs.order = append(cs.order[:i:i], cs.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered callbacks.
func (cs *CallbackSet[F]) Len() int { return len(cs.order) }

// Clear removes all callbacks.
func (cs *CallbackSet[F]) Clear() {
	cs.order = nil
	cs.funcs = nil
}

// Each calls call for every registered callback in subscription order.
// Callbacks added while iterating are first called by the next Each;
// callbacks removed while iterating are not called any more.
func (cs *CallbackSet[F]) Each(call func(F)) {
	subs := slices.Clone(cs.order)
	for _, s := range subs {
		f, ok := cs.funcs[s]
		if !ok {
			continue
		}
		call(f)
	}
}
