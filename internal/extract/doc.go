// Package extract pulls the fixtures table and the player scoring table out of a
// kicktipp "Tippübersicht" page.
//
// Tables are located by an ordered chain of matchers over their header labels, and
// columns inside a table by an ordered chain of resolvers that fall back to positional
// indices. Missing tables and malformed cells never produce errors: callers get empty
// results or per-field defaults instead.
package extract
