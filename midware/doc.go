/*
Package midware defines an interface for the common http middleware pattern
and provides functionality for sensibly chaining middleware to create
complex http handlers.  The schedule API composes its request-id, logging,
and archiving middleware through the Chain type; third-party middleware in
the func(http.Handler) http.Handler shape can join a chain via Func.

	middleware := midware.Chain{
		// TraceHeaders is first so every later middleware (and the
		// response) sees the request id it assigns.
		midware.TraceHeaders("", true),
		reqlog.RequestLogger(logger, reqlog.SimpleTimer(), reqlog.RealTime(), ""),
		archiver, // e.g. auditlog.NewS3Archiver
		midware.PathOverrides{
			"/healthz": healthHandler,
		},
	}
	http.ListenAndServe(":8080", middleware.Wrap(apiRoutes))
*/
package midware
