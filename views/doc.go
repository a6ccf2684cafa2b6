// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views renders the server's HTML pages from embedded templates.
//
// Every page shares templates/base.html and fills its "title" and "content"
// blocks. Counts go through humanize.Comma and rank headings through
// humanize.Ordinal.
package views
