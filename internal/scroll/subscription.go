package scroll

// Subscription is the handle returned when registering a listener.
type Subscription struct {
	cancel func()
}

// Cancel removes the listener. Calling it more than once, or on a nil
// subscription, does nothing.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Active reports whether the listener is still registered through this handle.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}
