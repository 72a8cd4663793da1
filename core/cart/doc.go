// Package cart caches the signed-in user's cart and keeps it in step with the API.
//
// The server is authoritative for prices, stock and totals. Store therefore never
// patches its local copy: Add, Update, Remove and Clear send the mutation and then
// re-fetch the whole cart. The Summary is always derived from the cached items
// with Summarize, so Count and Total cannot drift from the lines they describe.
//
// All operations require a persisted token. Without one they fail locally with
// an *apiclient.Failure and no request is made.
//
//	carts, err := cart.New(client, cart.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	go carts.Watch(ctx, carts.Subscribe(ctx)) // follows login and logout, including from other processes
//
//	if err := carts.Add(ctx, productID, 2); err != nil {
//		fmt.Println(err) // user-facing message
//	}
//	fmt.Println(carts.Summary().Total)
package cart
