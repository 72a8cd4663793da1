// Package catalog reads the product catalog and forwards admin edits to the API.
//
// Listing and detail are public:
//
//	svc, err := catalog.New(client, catalog.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	page, err := svc.List(ctx, 3)
//	if err != nil {
//		fmt.Println(err) // "Failed to load products"
//	}
//	for _, item := range catalog.Pagination(page.CurrentPage, page.LastPage) {
//		// render the pager; PageItemEllipsis marks skipped ranges
//	}
//
// The server's current_page is authoritative; the requested page is only sent
// as the ?page= query.
//
// # Admin edits
//
// Create and Update send multipart forms so an image can be attached. Update
// posts with _method=PUT and keeps the current image when ProductInput.Image is
// nil. Images are checked locally before upload: at most MaxImageSize bytes and
// one of png, jpg, jpeg or webp, sniffed from the content and falling back to
// the file extension.
//
// Every failure is an *apiclient.Failure. Loads and deletes use fixed messages;
// saves prefer the server message and fall back to MsgSaveFailed.
package catalog
