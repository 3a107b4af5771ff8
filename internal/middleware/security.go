// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds defensive HTTP headers to every API response. The
// gallery serves user-authored titles and comments back out, so the
// browser-side protections stay on even for JSON endpoints.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// JSON responses must never be sniffed into something executable.
		h.Set("X-Content-Type-Options", "nosniff")

		// No cross-origin framing of gallery pages.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Legacy XSS filter off; it does more harm than good.
		h.Set("X-XSS-Protection", "0")

		// Keep full referrer URLs (which carry post ids) on our origin only.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Opt out of FLoC cohort calculations.
		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}
