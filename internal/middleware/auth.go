// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordHeader carries the shared admin passphrase on every admin
// API request. There are no sessions: the admin surface is a single
// shared passphrase, compared against a bcrypt hash per request.
const AdminPasswordHeader = "X-Admin-Password"

// RequireAdmin rejects requests whose passphrase header does not match
// the given bcrypt hash.
func RequireAdmin(passwordHash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminPasswordHeader)
			if supplied == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(supplied)); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
