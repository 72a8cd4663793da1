// Package apiclient is the HTTP adapter between the storefront client and its REST API.
//
// Every call goes through Client.Do, which:
//
//   - reads the persisted bearer token from a tokenstore.Store and sends it in the
//     Authorization header (requests go out unauthenticated when no token is stored)
//   - encodes the body as JSON, or as multipart/form-data for *Multipart
//   - returns *HTTPError for any non-2xx status, carrying the status code, the
//     server message and the per-field validation payload
//   - on 401, clears the persisted token and identity snapshot and asks the
//     Navigator to redirect to LoginPath
//
// The 401 reaction lives here and nowhere else, so stores only deal with their own
// local state when a request is rejected.
//
//	client, err := apiclient.New("http://127.0.0.1:8000/api", store,
//		apiclient.WithNavigator(apiclient.NavigatorFunc(func(path string) {
//			fmt.Println("→", path)
//		})),
//	)
//
//	resp, err := client.Get(ctx, "/products", apiclient.WithQuery("page", "2"))
//	if httpErr, ok := apiclient.AsHTTPError(err); ok {
//		fmt.Println(httpErr.Status, httpErr.Message)
//	}
//	page, err := apiclient.DecodeJSON[catalog.Page](resp)
package apiclient
