// Package broadcast is a generic in-memory pub/sub used to fan out change
// signals to any number of subscribers.
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive() {
//			fmt.Println(msg.Data)
//		}
//	}()
//
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "token changed"})
//
// Delivery never blocks: when a subscriber's buffer is full the message is
// dropped for that subscriber only. A subscriber is removed and its channel
// closed when its context is done, when Close is called on it, or when the
// broadcaster is closed.
package broadcast
