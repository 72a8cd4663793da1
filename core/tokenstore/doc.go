// Package tokenstore persists the bearer token and the serialized identity snapshot
// outside process memory, and signals every change to interested subscribers.
//
// The token and identity are written together on login/registration and cleared
// together on logout or when the API rejects the token. Three drivers exist:
//
//   - memory: process-local, for tests and throwaway sessions
//   - file: a JSON document on disk that survives restarts
//   - redis: shared keys plus a pub/sub channel, so several processes observe each
//     other's login and logout
//
// Usage:
//
//	store, err := tokenstore.NewStore(tokenstore.StoreTypeFile,
//		tokenstore.WithFilePath("/home/jane/.config/storefront/session.json"),
//	)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	sub := store.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive() {
//			log.Println("storage changed:", msg.Data.Key, msg.Data.Cleared)
//		}
//	}()
//
//	_ = store.Save(ctx, "1|plain-text-token", []byte(`{"id":1,"name":"Jane"}`))
package tokenstore
