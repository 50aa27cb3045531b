// Package summary contains the test run summary reporter.
//
// A Reporter observes one test run through three hooks, called in this order by whatever is
// executing the tests:
//
// 1. Begin, once, when the run starts.
//
// 2. TestEnd, once for each test that reaches a terminal status.
//
// 3. End, once, when the run is over. This computes a Summary from the recorded outcomes,
// formats it as a chat message, and POSTs it to the configured webhook.
//
// Delivery problems are logged as warnings and never reach the caller: a broken notification
// channel must not change the outcome of the test run.
package summary
