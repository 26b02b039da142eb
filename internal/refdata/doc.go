// Package refdata holds the static reference tables consumed by scoring and
// validation: source reliability weights, signal-type impact weights,
// historical patterns, the known-ticker set, the common-word stoplist, spam
// phrasing patterns, and per-platform confidence ceilings.
//
// Tables are loaded once at process start (defaults, optionally overridden
// from a YAML file) and treated as immutable afterwards. Components receive
// them by reference and never write to them.
package refdata
