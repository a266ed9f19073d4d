// Package subscription keeps track of who is waiting for MPD change
// notifications.
//
// MPD reports changes through the idle command, which names the changed
// subsystems (player, mixer, database, ...). A connection can only hold one
// idle command at a time, so interested parties register a Subscription
// with the Manager instead. The connection idles on the union of all
// interest sets and hands every reported change set to the subscribers it
// concerns.
//
// # Interest Sets
//
// A subscription names the subsystems it cares about. An empty set is a
// catch-all: it matches every change, and while such a subscriber exists
// the connection idles without arguments.
//
// # Coalescing
//
// Subscribers consume notifications at their own pace with Next. Change
// sets that arrive before the previous one was consumed are merged, so a
// slow subscriber sees one combined set instead of a backlog.
//
// # Lifecycle
//
// Subscriptions do NOT survive connection loss. Manager.Fail hands the
// connection error to every subscriber and empties the registry; callers
// subscribe again on the next connection.
package subscription
