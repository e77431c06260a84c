// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

	GET  /health        - 200 "OK", or 503 when the store cannot be pinged
	POST /vote          - Record a vote, returns the stage tally
	GET  /tally/{stage} - Current tally of a stage
	GET  /              - Banner

Unknown paths return 404 and known paths with the wrong method 405.
*/
package router
