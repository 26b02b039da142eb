// Package generator assembles candidate signals from annotated collector
// records. Each signal type has a generation rule (trigger keywords, implied
// sentiment, default price targets, base confidence); records whose text
// matches a rule produce a signal of that type, and records from social
// platforms with strong sentiment fall back to a social-sentiment signal.
//
// Records without a ticker never become signals. Entity and sentiment
// extraction happen upstream; the generator consumes annotations and only
// consults an Extractor when a record arrives unannotated.
package generator
