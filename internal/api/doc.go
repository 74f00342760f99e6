// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package api serves the JSON HTTP API.

Routes are mounted under /api/v1 on a chi router. Every response uses the
envelope written by ResponseWriter:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

# Routes

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/recipes/top
	GET    /api/v1/recipes/search?nome=&ingredientes=&categoria=&area=&page=
	GET    /api/v1/recipes/{externalID}                 optional auth
	POST   /api/v1/recipes                              user
	POST   /api/v1/recipes/{externalID}/ratings         user
	POST   /api/v1/recipes/{externalID}/comments        user
	POST   /api/v1/recipes/{externalID}/favorite        user
	GET    /api/v1/me/favorites?page=                   user
	GET    /api/v1/me/profile                           user
	GET    /api/v1/moderation/recipes                   admin
	POST   /api/v1/moderation/recipes/{id}/approve      admin
	DELETE /api/v1/moderation/recipes/{id}              admin
	GET    /metrics

Search parameters keep the Portuguese names the web front end sends.

# Middleware

Global: request ID, real IP, panic recovery, access log, CORS. The /api/v1
group adds security headers, Prometheus metrics and httprate limiting keyed
by client IP. Authentication is applied per route.
*/
package api
