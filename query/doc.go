// Package query implements an ordered multi-map of query string parameters.
//
// Parameters keep the order in which keys were first seen, and every key maps to a [Value]
// which is one of:
//
//   - null: the key was present without "=" ("flag");
//   - scalar: a single "key=value" pair;
//   - list: repeated pairs in order ("a=1&a=2"), a repeated bare key stays bare ("a&a=1");
//   - absent: a placeholder rendered as "key=".
//
// Parsing decodes keys and values with the lenient percent decoder
// (plus signs become spaces), rendering encodes them as URI components:
//
//	q := query.Parse("page=2&tag=go&tag=web&unread")
//	q.Get("tag")    // List("go", "web")
//	q.Get("unread") // Null()
//	q.Set("page", query.Scalar("3"))
//	q.String()      // "page=3&tag=go&tag=web&unread"
//
// Values are not safe for concurrent modification.
package query
