// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package auth verifies bearer tokens and attaches the caller's identity to the
request context.

Tokens are HS256 JWTs issued by an upstream identity service that shares
JWT_SECRET with this one. The subject is taken from the "sub" claim, falling
back to "username"; the "role" claim is either "user" or "admin".

# Modes

  - jwt: every protected route needs a valid bearer token (or "token" cookie)
  - none: a fixed development identity with both roles is injected; never use
    this outside local development

# Middleware

	m := auth.NewMiddleware(jwtManager, auth.AuthModeJWT)
	r.Get("/recipes/{id}", m.Optional(h.RecipeDetail))
	r.Post("/recipes/{id}/ratings", m.Authenticate(h.RateRecipe))
	r.Get("/moderation/recipes", m.RequireRole(auth.RoleAdmin, h.PendingRecipes))

Handlers read the identity with GetAuthSubject(r.Context()).
*/
package auth
