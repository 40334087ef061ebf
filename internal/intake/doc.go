// Package intake implements logobrief-server, the HTTP service that receives
// completed briefs.
//
// Routes:
//
//	POST /api/v1/briefs  validate a JSON brief, reply 201 with a receipt
//	GET  /api/v1/feed    websocket stream of accepted briefs
//	GET  /healthz        liveness, version, and subscriber count
//
// Accepted briefs are logged and broadcast to feed subscribers, then
// discarded. The server stores nothing.
//
//	srv, err := intake.New(&intake.Config{Addr: ":8080"})
//	if err != nil {
//	    return err
//	}
//	return srv.Serve(ctx)
package intake
