// Package observe provides a publish/subscribe hub for state-change
// notification.
//
// A Hub keeps a subscriber set per opaque publisher key. NotifyAll takes
// a snapshot of the set under a short critical section and invokes each
// handler outside it, in subscription order (deterministic delivery).
//
// # Snapshot Semantics
//
// A subscriber added while a NotifyAll pass is executing does not receive
// that pass; it receives the next one. A subscriber removed mid-pass may
// or may not receive the in-flight event, but its handler is never
// invoked after Unsubscribe returns: Unsubscribe waits for any in-flight
// invocation to that subscriber to finish.
//
// # Failure Isolation
//
// Handler errors never abort a pass. NotifyAll always delivers to every
// remaining subscriber and returns the failures aggregated in a
// *NotifyError, one *SubscriberError per failing handler.
//
//	hub := observe.NewHub()
//	sub, err := hub.Subscribe("fighter", observe.HandlerFunc(
//	    func(ctx context.Context, evt observe.Event) error {
//	        fmt.Println("changed:", evt.Type)
//	        return nil
//	    }))
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
//
//	err := hub.NotifyAll(ctx, "fighter", observe.NewEvent("slot.replaced", "fighter", nil))
package observe
