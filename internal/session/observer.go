package session

// Observer is notified after every session mutation.
type Observer interface {
	OnChange(c Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(c Change)

func (f ObserverFunc) OnChange(c Change) { f(c) }

// Tee fans a single notification channel out to several observers, called
// in argument order. Nil observers are skipped.
func Tee(observers ...Observer) Observer {
	list := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return ObserverFunc(func(c Change) {
		for _, o := range list {
			o.OnChange(c)
		}
	})
}
